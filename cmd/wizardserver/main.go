// Command wizardserver runs a single Wizard table: one process, one
// listener, one authoritative game server. Structured after the teacher's
// apps/server/main.go wiring but with a flag-based surface (no cobra/viper
// appear anywhere in the retrieval pack) instead of env-var configuration,
// and with the auth/ledger/story/NPC subsystems dropped since this
// protocol has no accounts, currency, or narrative layer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decred/slog"

	"wizardnet/internal/gameserver"
	"wizardnet/internal/wlog"
)

func main() {
	addr := flag.String("addr", ":18080", "address to listen on")
	debug := flag.String("debug", "info", "log level: trace, debug, info, warn, error, off")
	flag.Parse()

	log := wlog.Logger("gameserver")
	if lvl, ok := slog.LevelFromString(*debug); ok {
		log.SetLevel(lvl)
	}

	srv := gameserver.New(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "wizardserver: %v\n", err)
		os.Exit(1)
	}
	log.Infof("wizard table listening on %s", srv.Addr())

	<-ctx.Done()
	log.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "wizardserver: shutdown: %v\n", err)
		os.Exit(1)
	}
}
