package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

// ShowWeekCmd creates the showWeek command
func ShowWeekCmd(app *AppContext) *cobra.Command {
	var batchID string
	cmd := &cobra.Command{
		Use:   "showWeek <week>",
		Short: "Show a week's assignments and who is available for each role",
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

			opts, err := services.LoadWeekOptions(app.Ctx, app.Store, app.Logger, batch.ID, weekIdx)
			if err != nil {
				return err
			}

			week := opts.Week
			fmt.Printf("\n%s — week %d", batch.ID, weekIdx+1)
			if week.Kind == model.WeekBreak {
				fmt.Print(" (break week)")
			}
			fmt.Println()
			if week.Topic != "" {
				fmt.Printf("Topic: %s\n", week.Topic)
			}
			if week.Date != "" {
				fmt.Printf("Date:  %s\n", week.Date)
			}
			fmt.Println()

			for _, role := range model.SingularRoles(week.Kind) {
				holder := "-"
				if id := opts.Sheet.Get(role); id != "" {
					holder = model.DisplayName(weekMembers(opts), id)
				}
				fmt.Printf("  %-22s %s\n", role.Label()+":", holder)
			}
			if week.Kind == model.WeekSession {
				for _, team := range []model.Role{model.RoleAffirmative, model.RoleNegative} {
					names := make([]string, 0, len(opts.Sheet.Team(team)))
					for _, id := range opts.Sheet.Team(team) {
						names = append(names, model.DisplayName(weekMembers(opts), id))
					}
					fmt.Printf("  %-22s %s\n", team.Label()+":", strings.Join(names, ", "))
				}
			}

			if len(opts.Sheet.OnLeave) > 0 {
				names := make([]string, 0, len(opts.Sheet.OnLeave))
				for _, id := range opts.Sheet.OnLeave {
					names = append(names, model.DisplayName(weekMembers(opts), id))
				}
				fmt.Printf("\n  On leave: %s\n", strings.Join(names, ", "))
			}

			fmt.Println("\nAvailability:")
			for _, s := range opts.Summaries {
				marker := " "
				note := ""
				switch {
				case s.OnLeave:
					marker = "-"
					note = " (on leave)"
				case s.Busy():
					marker = "*"
					note = " (" + s.Label() + ")"
				}
				fmt.Printf("  %s %s%s\n", marker, s.Member.Name, note)
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch to show (defaults to the active batch)")
	return cmd
}

// SetTopicCmd creates the setTopic command
func SetTopicCmd(app *AppContext) *cobra.Command {
	var batchID string
	cmd := &cobra.Command{
		Use:   "setTopic <week> <topic>",
		Short: "Set the debate topic for a week",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekIdx, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			batch, err := app.resolveBatch(batchID)
			if err != nil {
				return err
			}
			topic := strings.Join(args[1:], " ")
			if err := services.SetTopic(app.Ctx, app.Store, app.Logger, batch.ID, weekIdx, topic); err != nil {
				return err
			}
			fmt.Printf("\n✓ Topic set for week %d: %s\n\n", weekIdx+1, topic)
			return nil
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch to edit (defaults to the active batch)")
	return cmd
}

// SetAudienceCmd creates the setAudience command
func SetAudienceCmd(app *AppContext) *cobra.Command {
	var batchID string
	cmd := &cobra.Command{
		Use:   "setAudience <week> <count>",
		Short: "Record the audience headcount for a week",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekIdx, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("count must be a number, got %q", args[1])
			}
			batch, err := app.resolveBatch(batchID)
			if err != nil {
				return err
			}
			if err := services.SetAudienceCount(app.Ctx, app.Store, app.Logger, batch.ID, weekIdx, count); err != nil {
				return err
			}
			fmt.Printf("\n✓ Audience count for week %d set to %d\n\n", weekIdx+1, count)
			return nil
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch to edit (defaults to the active batch)")
	return cmd
}

// ReportCmd creates the report command
func ReportCmd(app *AppContext) *cobra.Command {
	var batchID string
	cmd := &cobra.Command{
		Use:   "report <week>",
		Short: "Print the shareable role report for a week",
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
			members, err := store.LoadMembers(app.Ctx, app.Store)
			if err != nil {
				return err
			}
			report, err := services.RenderWeekReport(members, batch, weekIdx)
			if err != nil {
				return err
			}
			att := services.WeekAttendance(members, batch.Weeks[weekIdx])
			fmt.Println()
			fmt.Println(report)
			fmt.Printf("Attendance: %d facilitators + %d guests = %d\n\n", att.Facilitators, att.Guests, att.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&batchID, "batch", "", "batch to report on (defaults to the active batch)")
	return cmd
}

func weekMembers(opts *services.WeekOptions) []model.Member {
	seen := make(map[string]bool, len(opts.Summaries))
	members := make([]model.Member, 0, len(opts.Summaries))
	for _, s := range opts.Summaries {
		if !seen[s.Member.ID] {
			seen[s.Member.ID] = true
			members = append(members, s.Member)
		}
	}
	return members
}
