package cmd

import (
	"context"
	"flag"
	"testing"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Mode    string `env:"CMD_TEST_MODE" envDefault:"server"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("CMD_TEST_MODE", "env-mode")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Address, "address", cfgRef.Address, "address")
	fs.StringVar(&cfgRef.Mode, "mode", cfgRef.Mode, "mode")

	if err := ParseArgs(fs, []string{"-address", "flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Address != "flag:9001" {
		t.Fatalf("expected flag value for address, got %q", cfgRef.Address)
	}
	if cfgRef.Mode != "env-mode" {
		t.Fatalf("expected env default mode, got %q", cfgRef.Mode)
	}
}

func TestRunWithTelemetryRequiresService(t *testing.T) {
	err := RunWithTelemetry(context.Background(), " ", func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for empty service name")
	}
}

func TestRunWithTelemetryRequiresRunFunc(t *testing.T) {
	err := RunWithTelemetry(context.Background(), ServiceMarket, nil)
	if err == nil {
		t.Fatal("expected error for nil run function")
	}
}

func TestRunWithTelemetryExecutesRun(t *testing.T) {
	t.Setenv("DEEDSHARE_OTEL_ENDPOINT", "")

	ran := false
	err := RunWithTelemetry(context.Background(), ServiceMarket, func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("run with telemetry: %v", err)
	}
	if !ran {
		t.Fatal("expected run function to execute")
	}
}
