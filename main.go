package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "tripdiary/internal/config"
	router "tripdiary/internal/http"
	"tripdiary/internal/http/middleware"
	"tripdiary/internal/repositories"
	"tripdiary/internal/services"

	"github.com/gin-gonic/gin"
)

const tokenTTL = 30 * 24 * time.Hour

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := printToken(os.Stdout, env, os.Args[2:]); err != nil {
			log.Fatalf("token: %v", err)
		}
		return
	}

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx := context.Background()
	repo, closeStore, err := openTripStore(ctx, env)
	if err != nil {
		log.Fatalf("Failed to open trip store %q: %v", env.TripStore, err)
	}
	defer closeStore()

	trips := services.NewTripService(repo)
	r := router.NewRouter(env, router.Deps{
		Trips:   trips,
		Reports: services.ReportService{Trips: trips},
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s (store=%s auth=%t)", env.AppAddr, env.TripStore, env.AuthSecret != "")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped.")
}

// openTripStore builds the repository selected by TRIP_STORE. The returned
// func releases its connections.
func openTripStore(ctx context.Context, env intconfig.Env) (repositories.TripRepository, func(), error) {
	switch env.TripStore {
	case intconfig.StoreMemory, "":
		return repositories.NewMemoryTripRepository(), func() {}, nil

	case intconfig.StoreMySQL:
		db, err := intconfig.ConnectMySQL(ctx, env)
		if err != nil {
			return nil, nil, err
		}
		if err := intconfig.MigrateMySQL(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repositories.NewMySQLTripRepository(db), func() {
			if err := db.Close(); err != nil {
				log.Printf("[DB] close: %v", err)
			}
		}, nil

	case intconfig.StoreRedis:
		client, err := intconfig.ConnectRedis(ctx, env)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewRedisTripRepository(client, env.RedisKey), func() {
			if err := client.Close(); err != nil {
				log.Printf("[REDIS] close: %v", err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown TRIP_STORE %q (want memory, mysql or redis)", env.TripStore)
	}
}

func printToken(w io.Writer, env intconfig.Env, args []string) error {
	if env.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is not set")
	}
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("usage: %s token <subject>", os.Args[0])
	}
	token, err := middleware.IssueToken(env.AuthSecret, args[0], tokenTTL, time.Now())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
