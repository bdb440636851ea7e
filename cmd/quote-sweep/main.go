// Command quote-sweep deletes expired quotes nobody answered. It is meant to
// run from a scheduler; the API exposes the same sweep to admins.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"ritual_desk/internal/adapter/persistence"
	"ritual_desk/internal/infrastructure/config"
	"ritual_desk/internal/infrastructure/logger"
	"ritual_desk/internal/infrastructure/messaging"
	"ritual_desk/internal/usecase"

	"github.com/fatih/color"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	os.Exit(run(os.Args[1:], config.Load()))
}

// run returns the process exit code so deferred cleanup (log flush) happens
// before main exits.
func run(args []string, cfg config.Config) int {
	fs := flag.NewFlagSet("quote-sweep", flag.ContinueOnError)
	statsOnly := fs.Bool("stats", false, "print quote counts without deleting anything")
	timeout := fs.Duration("timeout", 2*time.Minute, "overall deadline")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log, err := logger.New(logger.Options{Mode: cfg.App.Environment, Level: cfg.App.LogLevel, FilePath: cfg.App.LogFilePath})
	if err != nil {
		color.Red("logger init failed: %v", err)
		return 1
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	stores, err := persistence.Open(ctx, cfg.Storage)
	if err != nil {
		log.Error("[sweep] storage init failed", "driver", cfg.Storage.Driver, "err", err)
		color.Red("storage init failed: %v", err)
		return 1
	}
	quotes := usecase.NewQuoteUseCase(stores.Quotes, messaging.NewNoopPublisher(log), log, usecase.QuoteUseCaseOptions{
		DefaultCurrency:  cfg.Quotes.DefaultCurrency,
		DefaultValidDays: cfg.Quotes.DefaultValidDays,
	})

	before, err := quotes.GetQuoteStats(ctx)
	if err != nil {
		color.Red("reading quote stats failed: %v", err)
		return 1
	}
	color.Cyan("quotes: total=%d accepted=%d rejected=%d pending=%d", before.Total, before.Accepted, before.Rejected, before.Pending)
	if *statsOnly {
		return 0
	}

	deleted, err := quotes.ExpireSweep(ctx)
	if err != nil {
		color.Red("sweep stopped after %d deletions: %v", deleted, err)
		return 1
	}
	if deleted == 0 {
		color.Yellow("nothing to sweep")
		return 0
	}
	color.Green("deleted %d expired quote(s)", deleted)
	return 0
}
