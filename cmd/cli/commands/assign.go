package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/engine"
	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	var batchID string
	cmd := &cobra.Command{
		Use:   "assign <week> <role> [name]",
		Short: "Assign a member to a role slot (omit the name to clear the slot)",
		Long: `Assign a member to a role slot for a week (1-5) of a batch.

Conflicting assignments are resolved automatically: the presenter is
cleared from every other role and both teams, a member joining one team
leaves the other, and a spy judge and note-taker on the same team must
differ. Every automatic clear is reported.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekIdx, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			role, ok := model.ParseRole(args[1])
			if !ok {
				return fmt.Errorf("unknown role %q", args[1])
			}

			memberID := ""
			if len(args) == 3 {
				m, err := app.resolveMember(args[2])
				if err != nil {
					return err
				}
				memberID = m.ID
			}

			batch, err := app.resolveBatch(batchID)
			if err != nil {
				return err
			}

			var edit engine.Edit
			if role.IsTeam() {
				if memberID == "" {
					return fmt.Errorf("team roles need a member name (use teamRemove to drop one)")
				}
				edit = engine.TeamAdd(role, memberID)
			} else {
				edit = engine.Assign(role, memberID)
			}

			result, err := services.ApplyAssignment(app.Ctx, app.Store, app.Logger, batch.ID, weekIdx, edit)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s updated for %s week %d\n", role.Label(), batch.ID, weekIdx+1)
			printCascades(app, result.Cascades)
			return nil
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch to edit (defaults to the active batch)")
	return cmd
}

// TeamRemoveCmd creates the teamRemove command
func TeamRemoveCmd(app *AppContext) *cobra.Command {
	var batchID string
	cmd := &cobra.Command{
		Use:   "teamRemove <week> <affirmative|negative> <name>",
		Short: "Remove a member from a debate team",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekIdx, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			role, ok := model.ParseRole(args[1])
			if !ok || !role.IsTeam() {
				return fmt.Errorf("%q is not a team", args[1])
			}
			m, err := app.resolveMember(args[2])
			if err != nil {
				return err
			}
			batch, err := app.resolveBatch(batchID)
			if err != nil {
				return err
			}

			result, err := services.ApplyAssignment(app.Ctx, app.Store, app.Logger, batch.ID, weekIdx, engine.TeamRemove(role, m.ID))
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s removed from the %s\n", m.Name, role.Label())
			printCascades(app, result.Cascades)
			return nil
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch to edit (defaults to the active batch)")
	return cmd
}

// LeaveCmd creates the leave command
func LeaveCmd(app *AppContext) *cobra.Command {
	var batchID string
	var clear bool
	cmd := &cobra.Command{
		Use:   "leave <week> <name>",
		Short: "Mark a member on leave for a week (clears all their roles)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekIdx, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			m, err := app.resolveMember(args[1])
			if err != nil {
				return err
			}
			batch, err := app.resolveBatch(batchID)
			if err != nil {
				return err
			}

			edit := engine.LeaveAdd(m.ID)
			if clear {
				edit = engine.LeaveRemove(m.ID)
			}
			result, err := services.ApplyAssignment(app.Ctx, app.Store, app.Logger, batch.ID, weekIdx, edit)
			if err != nil {
				return err
			}

			if clear {
				fmt.Printf("\n✓ %s is back for week %d\n", m.Name, weekIdx+1)
			} else {
				fmt.Printf("\n✓ %s marked on leave for week %d\n", m.Name, weekIdx+1)
			}
			printCascades(app, result.Cascades)
			return nil
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch to edit (defaults to the active batch)")
	cmd.Flags().BoolVar(&clear, "clear", false, "clear the leave flag instead of setting it")
	return cmd
}

// ResetWeekCmd creates the resetWeek command
func ResetWeekCmd(app *AppContext) *cobra.Command {
	var batchID string
	cmd := &cobra.Command{
		Use:   "resetWeek <week>",
		Short: "Reset all assignments for a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekIdx, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			batch, err := app.resolveBatch(batchID)
			if err != nil {
				return err
			}
			if !confirm(fmt.Sprintf("Reset assignments for %s week %d?", batch.ID, weekIdx+1)) {
				fmt.Println("Aborted.")
				return nil
			}
			if err := services.ResetWeek(app.Ctx, app.Store, app.Logger, batch.ID, weekIdx); err != nil {
				return err
			}
			fmt.Printf("\n✓ Week %d reset\n\n", weekIdx+1)
			return nil
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch to edit (defaults to the active batch)")
	return cmd
}

func parseWeek(arg string) (int, error) {
	week, err := strconv.Atoi(arg)
	if err != nil || week < 1 || week > model.WeeksPerBatch {
		return 0, fmt.Errorf("week must be 1-%d, got %q", model.WeeksPerBatch, arg)
	}
	return week - 1, nil
}

func printCascades(app *AppContext, cascades []engine.Cascade) {
	if len(cascades) == 0 {
		fmt.Println()
		return
	}
	fmt.Println("  Automatic changes:")
	for _, c := range cascades {
		name := c.MemberID
		if m, err := app.resolveMemberByID(c.MemberID); err == nil && m != nil {
			name = m.Name
		}
		fmt.Printf("  - %s cleared from %s (%s)\n", name, c.Role.Label(), c.Reason)
	}
	fmt.Println()
	app.Logger.Debug("cascades printed", zap.Int("count", len(cascades)))
}
