// Package admin wires the festival maintenance command.
package admin

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/festival/internal/platform/cmd"
	"github.com/louisbranch/festival/internal/platform/id"
	"github.com/louisbranch/festival/internal/services/web/adminauth"
	"github.com/louisbranch/festival/internal/services/web/storage"
	"github.com/louisbranch/festival/internal/services/web/storage/sqlite"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const cliActor = "cli"

// Config holds the admin command configuration. Environment variables carry
// the FESTIVAL_ prefix.
type Config struct {
	DBPath        string `env:"DB_PATH" envDefault:"data/festival.db"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// ParseConfig loads env defaults, then global flags. Remaining arguments name
// the subcommand.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, []string, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, nil, err
	}
	return cfg, fs.Args(), nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the festival sqlite database")
}

// Usage describes the available subcommands.
const Usage = `usage: admin [-db-path PATH] <command> [flags]

commands:
  create-user -username NAME   create or reset an admin login
  seed                         load the demo festival program
  audit [-limit N]             print the newest audit entries
  summary                      print registration, ticket and donation totals`

// Run executes one subcommand against the festival store.
func Run(ctx context.Context, cfg Config, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(Usage)
	}
	command, rest := args[0], args[1:]
	switch command {
	case "create-user", "seed", "audit", "summary":
	default:
		return fmt.Errorf("unknown command %q\n%s", command, Usage)
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, func(ctx context.Context) error {
		store, err := openStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		switch command {
		case "create-user":
			return createUser(ctx, store, cfg, rest, stdin, stdout)
		case "seed":
			return seed(ctx, store, stdout)
		case "audit":
			return printAudit(ctx, store, rest, stdout)
		default:
			return printSummary(ctx, store, stdout)
		}
	})
}

func openStore(path string) (*sqlite.Store, error) {
	cleanPath := filepath.Clean(strings.TrimSpace(path))
	if cleanPath == "." || cleanPath == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

func createUser(ctx context.Context, store storage.Store, cfg Config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("username", "", "admin login name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	name := strings.ToLower(strings.TrimSpace(*username))
	if name == "" {
		return errors.New("-username is required")
	}

	password := cfg.AdminPassword
	if password == "" {
		line, err := readLine(stdin)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = line
	}
	hash, err := adminauth.HashPassword(password)
	if err != nil {
		return err
	}
	userID, err := id.NewID()
	if err != nil {
		return err
	}
	if err := store.PutAdminUser(ctx, storage.AdminUser{ID: userID, Username: name, PasswordHash: hash}); err != nil {
		return err
	}
	if err := store.AppendAudit(ctx, storage.AuditEntry{Actor: cliActor, Action: "admin.user_saved", Subject: name}); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "saved admin user %s\n", name)
	return nil
}

func readLine(r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("no password provided")
	}
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no password provided")
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}

func printAudit(ctx context.Context, store storage.AuditStore, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("limit", 20, "number of entries to print")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("-limit must be positive")
	}
	entries, err := store.ListAudit(ctx, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "no audit entries")
		return nil
	}
	for _, entry := range entries {
		line := fmt.Sprintf("%s  %-10s %-24s %s", entry.CreatedAt.UTC().Format(time.RFC3339), entry.Actor, entry.Action, entry.Subject)
		if entry.Detail != "" {
			line += "  " + entry.Detail
		}
		fmt.Fprintln(stdout, strings.TrimRight(line, " "))
	}
	return nil
}

func printSummary(ctx context.Context, store storage.SummaryStore, stdout io.Writer) error {
	summary, err := store.Summary(ctx)
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "registrations: %d (%d attendees)\n", summary.Registrations, summary.Attendees)
	p.Fprintf(stdout, "tickets sold: %d (%d checked in)\n", summary.TicketsSold, summary.TicketsCheckedIn)
	p.Fprintf(stdout, "ticket revenue: $%.2f\n", float64(summary.TicketRevenueCents)/100)
	p.Fprintf(stdout, "donations: %d ($%.2f)\n", summary.Donations, float64(summary.DonationCents)/100)

	tiers := make([]string, 0, len(summary.TicketsByTier))
	for tier := range summary.TicketsByTier {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		p.Fprintf(stdout, "  %s: %d\n", tier, summary.TicketsByTier[tier])
	}
	return nil
}
