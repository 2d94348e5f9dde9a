package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthbutler/swarm/internal/config"
	"github.com/healthbutler/swarm/internal/orchestrator"
	"github.com/healthbutler/swarm/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with a persistent TUI.

Type a question and press Enter; while the butler works, the current
delegation step is shown below the transcript. Every exchange is saved to
the local history database. Config file edits (apology, vocabulary path,
retry schedule) are picked up live without restarting. Quit with Esc or
Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	program, app := tui.NewChatProgram()

	var onStatus func(string)
	if cfg.TUI.ShowStatus {
		onStatus = func(status string) {
			program.Send(tui.StatusMsg{Text: status})
		}
	}

	// The orchestrator is swapped atomically on config reload; in-flight
	// requests keep the instance they started with.
	var orch atomic.Pointer[orchestrator.Orchestrator]
	initial, _, err := buildOrchestrator(cfg, onStatus)
	if err != nil {
		return err
	}
	orch.Store(initial)

	if path := config.ActiveConfigFile(); path != "" {
		watchErr := config.Watch(path, func(next *config.Config) {
			rebuilt, _, err := buildOrchestrator(next, onStatus)
			if err != nil {
				log.Printf("[chat] config reload failed, keeping previous: %v", err)
				return
			}
			orch.Store(rebuilt)
		}, func(err error) {
			log.Printf("[chat] config watch: %v", err)
		})
		if watchErr != nil {
			log.Printf("[chat] config watch unavailable: %v", watchErr)
		}
	}

	// Suppress log output while TUI is active
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	// Run each query async to avoid blocking the TUI
	app.SetSubmitHandler(func(text string) {
		go func() {
			started := time.Now()
			result, err := orch.Load().Execute(ctx, buildRequest(text, "", store))
			if err == nil {
				if _, recErr := store.RecordExecution(text, "", started, result); recErr != nil {
					log.Printf("[chat] warning: failed to record execution: %v", recErr)
				}
			}
			program.Send(tui.ResponseMsg{Result: result, Err: err})
		}()
	})

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}

	return nil
}
