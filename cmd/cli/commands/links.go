package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

// LinksCmd creates the links command
func LinksCmd(app *AppContext) *cobra.Command {
	var term string
	var category string
	cmd := &cobra.Command{
		Use:   "links",
		Short: "List every saved link across all batches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			batches, err := store.LoadBatches(app.Ctx, app.Store)
			if err != nil {
				return err
			}
			links := services.FilterLinks(services.CollectLinks(batches), term, category)
			if len(links) == 0 {
				fmt.Printf("\nNo links found.\n\n")
				return nil
			}
			fmt.Println()
			for _, l := range links {
				fmt.Printf("  [%s] %s\n      %s\n      %s\n", l.Category, l.Title, l.URL, l.Context)
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().StringVar(&term, "search", "", "filter by title, topic, or URL substring")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	return cmd
}

// DeleteLinkCmd creates the deleteLink command
func DeleteLinkCmd(app *AppContext) *cobra.Command {
	var master bool
	cmd := &cobra.Command{
		Use:   "deleteLink <batch> <week> <key>",
		Short: "Delete a saved link (master slots are blanked, custom links removed)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekIdx, err := parseWeek(args[1])
			if err != nil {
				return err
			}
			batch, err := app.resolveBatch(args[0])
			if err != nil {
				return err
			}
			if !confirm(fmt.Sprintf("Delete link %q from %s week %d?", args[2], batch.ID, weekIdx+1)) {
				fmt.Println("Aborted.")
				return nil
			}
			if err := services.DeleteLink(app.Ctx, app.Store, app.Logger, batch.ID, weekIdx, args[2], master); err != nil {
				return err
			}
			fmt.Printf("\n✓ Link deleted\n\n")
			return nil
		},
	}
	cmd.Flags().BoolVar(&master, "master", false, "the key names a master link slot rather than a custom link URL")
	return cmd
}
