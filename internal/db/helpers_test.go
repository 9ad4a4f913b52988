package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestNullableRoundTrip(t *testing.T) {
	if FloatPtr(NullFloatPtr(nil)) != nil {
		t.Fatalf("nil float should stay nil")
	}
	f := 12.5
	if got := FloatPtr(NullFloatPtr(&f)); got == nil || *got != f {
		t.Fatalf("float round trip = %v", got)
	}

	if StringPtr(sql.NullString{}) != nil {
		t.Fatalf("invalid NullString should map to nil")
	}
	s := "note"
	if got := StringPtr(NullStringPtr(&s)); got == nil || *got != s {
		t.Fatalf("string round trip = %v", got)
	}

	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2025, 1, 2, 10, 0, 0, 0, loc)
	got := TimePtr(NullTimePtr(&ts))
	if got == nil || !got.Equal(ts) || got.Location() != time.UTC {
		t.Fatalf("time round trip = %v", got)
	}
}

func TestHasTable(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("trips").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("trips"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	if !HasTable(t.Context(), conn, "trips") {
		t.Fatalf("expected trips table to exist")
	}
	if HasTable(t.Context(), conn, "missing") {
		t.Fatalf("expected missing table to be absent")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
