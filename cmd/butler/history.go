package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healthbutler/swarm/internal/config"
	"github.com/healthbutler/swarm/internal/state"
)

var (
	historyLimit int
	historyPurge time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past exchanges",
	Long: `List recent exchanges, newest first.

Use 'butler history show <id>' to replay one exchange's full delegation
log, or --purge-older-than to delete old entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList(cmd)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one exchange's delegation log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryShow(args[0])
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to list")
	historyCmd.Flags().DurationVar(&historyPurge, "purge-older-than", 0, "Delete entries older than this duration (e.g. 720h)")
	historyCmd.AddCommand(historyShowCmd)
}

func openAuditStore() (*state.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return openStore(cfg)
}

func runHistoryList(cmd *cobra.Command) error {
	store, err := openAuditStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if cmd.Flags().Changed("purge-older-than") {
		count, err := store.PurgeOldExecutions(historyPurge)
		if err != nil {
			return err
		}
		fmt.Printf("Purged %d exchange(s).\n", count)
		return nil
	}

	executions, err := store.ListRecentExecutions(historyLimit)
	if err != nil {
		return err
	}
	if len(executions) == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	idColor := color.New(color.FgHiBlack).SprintFunc()
	okColor := color.New(color.FgGreen).SprintFunc()
	failColor := color.New(color.FgRed).SprintFunc()

	for _, e := range executions {
		status := okColor("ok")
		if !e.Succeeded {
			status = failColor("failed")
		}
		input := e.UserInput
		if len(input) > 60 {
			input = input[:57] + "..."
		}
		fmt.Printf("%s  %s  [%s]  %s\n",
			e.StartedAt.Local().Format("2006-01-02 15:04"), idColor(e.ID[:8]), status, input)
	}

	return nil
}

func runHistoryShow(idPrefix string) error {
	store, err := openAuditStore()
	if err != nil {
		return err
	}
	defer store.Close()

	execution, err := findExecution(store, idPrefix)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", color.CyanString("question:"), execution.UserInput)
	if execution.MediaRef != "" {
		fmt.Printf("%s %s\n", color.CyanString("image:"), execution.MediaRef)
	}
	fmt.Println()

	messages, err := store.MessagesFor(execution.ID)
	if err != nil {
		return err
	}
	printMessageLog(messages)

	fmt.Printf("\n%s %s\n", color.GreenString("answer:"), execution.Response)
	return nil
}

// findExecution resolves a full ID or unique prefix.
func findExecution(store *state.DB, idPrefix string) (*state.Execution, error) {
	if e, err := store.GetExecution(idPrefix); err != nil {
		return nil, err
	} else if e != nil {
		return e, nil
	}

	executions, err := store.ListRecentExecutions(1000)
	if err != nil {
		return nil, err
	}

	var match *state.Execution
	for i := range executions {
		if len(executions[i].ID) >= len(idPrefix) && executions[i].ID[:len(idPrefix)] == idPrefix {
			if match != nil {
				return nil, fmt.Errorf("ambiguous id prefix: %s", idPrefix)
			}
			match = &executions[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no exchange with id %s", idPrefix)
	}
	return match, nil
}
