package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration unmarshals from "10s"-style strings or integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*d = Duration(time.Duration(x))
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// JSONConfig is the on-disk shape. Absent fields leave the current value.
type JSONConfig struct {
	ServerURL string   `json:"server_url"`
	DataPath  string   `json:"data_path"`
	Token     string   `json:"token"`
	Timeout   Duration `json:"timeout"`
}

func parseJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DataPath != "" {
		cfg.DataPath = jc.DataPath
	}
	if jc.Token != "" {
		cfg.Token = jc.Token
	}
	if jc.Timeout > 0 {
		cfg.Timeout = time.Duration(jc.Timeout)
	}
	return nil
}
