package market

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("market", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":8090" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8090")
	}
	if cfg.HealthAddr != ":8091" {
		t.Fatalf("HealthAddr = %q, want %q", cfg.HealthAddr, ":8091")
	}
	if cfg.DBPath != "data/market.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/market.db")
	}
	if cfg.BlockInterval != 6*time.Second {
		t.Fatalf("BlockInterval = %v, want %v", cfg.BlockInterval, 6*time.Second)
	}
}

func TestParseConfigEnvOverride(t *testing.T) {
	t.Setenv("DEEDSHARE_MARKET_ADDR", ":9000")
	t.Setenv("DEEDSHARE_MARKET_BLOCK_INTERVAL", "250ms")

	fs := flag.NewFlagSet("market", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9000")
	}
	if cfg.BlockInterval != 250*time.Millisecond {
		t.Fatalf("BlockInterval = %v, want %v", cfg.BlockInterval, 250*time.Millisecond)
	}
}

func TestParseConfigFlagOverride(t *testing.T) {
	fs := flag.NewFlagSet("market", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", ":9100", "-db-path", "scratch/market.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":9100" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9100")
	}
	if cfg.DBPath != "scratch/market.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "scratch/market.db")
	}
}
