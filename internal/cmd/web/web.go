// Package web wires the festival web command.
package web

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/festival/internal/platform/cmd"
	"github.com/louisbranch/festival/internal/platform/ctxlog"
	"github.com/louisbranch/festival/internal/services/web"
	"github.com/louisbranch/festival/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/festival/internal/services/web/storage/sqlite"
)

// Config holds the web command configuration. Environment variables carry
// the FESTIVAL_ prefix.
type Config struct {
	HTTPAddr            string        `env:"HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string        `env:"DB_PATH" envDefault:"data/festival.db"`
	SessionSecret       string        `env:"SESSION_SECRET"`
	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	StrictMode          bool          `env:"STRICT_MODE" envDefault:"false"`
	SecureCookies       bool          `env:"SECURE_COOKIES" envDefault:"false"`
	TrustForwardedProto bool          `env:"TRUST_FORWARDED_PROTO" envDefault:"false"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel            slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
}

// ParseConfig loads env defaults, then flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the festival sqlite database")
	fs.BoolVar(&cfg.StrictMode, "strict", cfg.StrictMode, "enable the development render guard on mounted units")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "mark cookies secure regardless of request scheme")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log output format: text or json")
}

// NewLogger builds the process logger described by cfg.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if strings.EqualFold(strings.TrimSpace(cfg.LogFormat), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Run starts the festival web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		if dir := filepath.Dir(filepath.Clean(cfg.DBPath)); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open festival store: %w", err)
		}
		server, err := web.NewServer(web.Config{
			HTTPAddr:      cfg.HTTPAddr,
			Store:         store,
			SessionSecret: cfg.SessionSecret,
			SessionTTL:    cfg.SessionTTL,
			StrictMode:    cfg.StrictMode,
			Logger:        ctxlog.FromContext(ctx, nil),
			RequestMeta: requestmeta.Policy{
				TrustForwardedProto: cfg.TrustForwardedProto,
				ForceHTTPS:          cfg.SecureCookies,
			},
		})
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
