// Command quill runs the Telegram-to-vault capture daemon: every message
// sent to the configured bot becomes a Markdown note in the vault.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/quill-labs/quill/internal/channel/telegram"
	"github.com/quill-labs/quill/internal/session"
	"github.com/quill-labs/quill/pkg/catalog"
	"github.com/quill-labs/quill/pkg/notify"
	"github.com/quill-labs/quill/pkg/settings"
	"github.com/quill-labs/quill/pkg/vault"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	settingsPath := flag.String("settings", "quill.json", "Path to the settings file")
	vaultPath := flag.String("vault", "", "Path to the vault directory (default $QUILL_VAULT or ./vault)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("quill %s (%s)\n", version, commit)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	vp := *vaultPath
	if vp == "" {
		vp = os.Getenv("QUILL_VAULT")
	}
	if vp == "" {
		vp = "vault"
	}

	v, err := vault.OpenDir(vp)
	if err != nil {
		slog.Error("failed to open vault", "path", vp, "error", err)
		os.Exit(1)
	}

	store, err := settings.Open(*settingsPath)
	if err != nil {
		slog.Error("failed to load settings", "path", *settingsPath, "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Open(filepath.Join(vp, ".quill"))
	if err != nil {
		// The daemon works without an index; /status just loses its counters.
		slog.Warn("note catalog unavailable", "error", err)
		cat = nil
	} else {
		defer cat.Close()
	}

	slog.Info("quill starting", "version", version, "vault", v.Root(), "settings", *settingsPath)

	notices := notify.NewBus()
	go printNotices(notices)

	mgr := session.New(telegram.Connector{}, v, cat, notices)
	store.OnChange(mgr.OnSettingsSaved)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cur := store.Current(); cur.Autostart {
		if err := mgr.Start(ctx, cur); err != nil {
			slog.Error("autostart failed", "error", err)
		}
	} else {
		slog.Info("autostart disabled; send SIGHUP after enabling it to start the bot")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range sigCh {
		if sig == syscall.SIGHUP {
			slog.Info("reloading settings")
			if err := store.Reload(); err != nil {
				slog.Error("settings reload failed", "error", err)
			} else if cur := store.Current(); cur.Autostart && !mgr.Running() {
				if err := mgr.Start(ctx, cur); err != nil {
					slog.Error("start after reload failed", "error", err)
				}
			}
			continue
		}
		slog.Info("received signal, shutting down", "signal", sig)
		break
	}

	mgr.Stop()
	slog.Info("quill stopped")
}

func printNotices(bus *notify.Bus) {
	ch, done := bus.Subscribe()
	defer bus.Unsubscribe(done)
	for n := range ch {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Level, n.Message)
	}
}
