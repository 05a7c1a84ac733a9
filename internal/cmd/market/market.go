// Package market wires configuration and startup for the market service.
package market

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	platformcmd "github.com/deedshare/deedshare/internal/platform/cmd"
	"github.com/deedshare/deedshare/internal/services/market/api/rest"
	"github.com/deedshare/deedshare/internal/services/market/app"
)

// Config holds the market command configuration.
type Config struct {
	HTTPAddr      string        `env:"DEEDSHARE_MARKET_ADDR" envDefault:":8090"`
	HealthAddr    string        `env:"DEEDSHARE_MARKET_HEALTH_ADDR" envDefault:":8091"`
	DBPath        string        `env:"DEEDSHARE_MARKET_DB_PATH" envDefault:"data/market.db"`
	BlockInterval time.Duration `env:"DEEDSHARE_MARKET_BLOCK_INTERVAL" envDefault:"6s"`
}

// ParseConfig loads environment defaults and then parses flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP API listen address")
	fs.StringVar(&cfg.HealthAddr, "health-addr", cfg.HealthAddr, "gRPC health listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the sqlite journal")
	fs.DurationVar(&cfg.BlockInterval, "block-interval", cfg.BlockInterval, "wall-clock duration of one block")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the market server and blocks until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMarket, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	auth, err := rest.LoadAuthConfigFromEnv(time.Now)
	if err != nil {
		return fmt.Errorf("load token config: %w", err)
	}

	server, err := app.NewServer(ctx, app.ServerConfig{
		HTTPAddr:      cfg.HTTPAddr,
		GRPCAddr:      cfg.HealthAddr,
		DBPath:        cfg.DBPath,
		BlockInterval: cfg.BlockInterval,
		Handler: func(runtime *app.Runtime) http.Handler {
			return rest.NewHandler(runtime, auth, slog.Default())
		},
	})
	if err != nil {
		return fmt.Errorf("init market server: %w", err)
	}

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("serve market: %w", err)
	}
	return nil
}
