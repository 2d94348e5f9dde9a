package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healthbutler/swarm/internal/config"
	"github.com/healthbutler/swarm/pkg/models"
)

var (
	askImage   string
	askVerbose bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Long: `Ask the butler one question and print the answer.

The question is routed to the nutrition and/or fitness workers; attach a
meal photo with --image to have it analyzed. The exchange is saved to the
local history database.

Examples:
  butler ask "How many calories are in a bowl of ramen?"
  butler ask "I just ate a burger, what exercise should I do?"
  butler ask --image meal.jpg "What's in this meal?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(strings.Join(args, " "))
	},
}

func init() {
	askCmd.Flags().StringVar(&askImage, "image", "", "Path or reference to a meal photo")
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "Show the delegation log")
}

func runAsk(question string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	orch, client, err := buildOrchestrator(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !askVerbose {
		log.SetOutput(io.Discard)
	}

	started := time.Now()
	result, err := orch.Execute(ctx, buildRequest(question, askImage, store))
	if err != nil {
		return fmt.Errorf("execute: %w", err)
	}

	if askVerbose {
		printMessageLog(result.MessageLog)
		fmt.Println()
	}

	fmt.Println(result.Response)

	if _, err := store.RecordExecution(question, askImage, started, result); err != nil {
		log.Printf("[ask] warning: failed to record execution: %v", err)
	}

	if askVerbose {
		input, output := client.Tracker().Total()
		fmt.Fprintf(os.Stderr, "\n%s %d API call(s), %d in / %d out tokens, %s\n",
			color.HiBlackString("usage:"), client.Tracker().Calls(), input, output,
			time.Since(started).Round(10*time.Millisecond))
	}

	return nil
}

// printMessageLog renders the delegation log, one line per message.
func printMessageLog(messages []models.Message) {
	kindColor := map[models.MessageKind]*color.Color{
		models.KindTask:   color.New(color.FgCyan),
		models.KindResult: color.New(color.FgGreen),
		models.KindStatus: color.New(color.FgHiBlack),
	}

	for _, m := range messages {
		c, ok := kindColor[m.Kind]
		if !ok {
			c = color.New(color.FgWhite)
		}
		content := m.Content
		if len(content) > 120 {
			content = content[:117] + "..."
		}
		c.Printf("%s  %s -> %s  [%s]  %s\n",
			m.Timestamp.Format("15:04:05"), m.From, m.To, m.Kind, content)
	}
}
