package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

// CreateBatchCmd creates the createBatch command
func CreateBatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "createBatch <name>",
		Short: "Create a new five-week batch and archive all others",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := services.SessionDates(app.Cfg.SessionRRule, time.Now())
			if err != nil {
				return err
			}

			batch, err := services.CreateBatch(app.Ctx, app.Store, app.Logger, args[0], dates)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Batch created: %s\n\n", batch.ID)
			for i, w := range batch.Weeks {
				kind := "session"
				if i == len(batch.Weeks)-1 {
					kind = "break"
				}
				date := w.Date
				if date == "" {
					date = "undated"
				}
				fmt.Printf("  Week %d  %-10s  %s\n", i+1, date, kind)
			}
			fmt.Println()
			return nil
		},
	}
}

// ListBatchesCmd creates the listBatches command
func ListBatchesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listBatches",
		Short: "List all batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			batches, err := store.LoadBatches(app.Ctx, app.Store)
			if err != nil {
				return err
			}
			if len(batches) == 0 {
				fmt.Println("\nNo batches exist yet.")
				return nil
			}
			fmt.Printf("\nBatches (%d):\n", len(batches))
			for _, b := range batches {
				marker := " "
				if b.Status == model.BatchActive {
					marker = "*"
				}
				fmt.Printf("  %s %s\n", marker, b.ID)
			}
			fmt.Println()
			return nil
		},
	}
}

// DeleteBatchCmd creates the deleteBatch command
func DeleteBatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteBatch <name>",
		Short: "Delete a batch (the last batch cannot be deleted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(fmt.Sprintf("Delete %q?", args[0])) {
				fmt.Println("Aborted.")
				return nil
			}
			if err := services.DeleteBatch(app.Ctx, app.Store, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Batch %s deleted\n\n", args[0])
			return nil
		},
	}
}

// confirm prompts for a yes/no answer on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
