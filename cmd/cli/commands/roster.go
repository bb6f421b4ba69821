package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyeinlwin/clubsched/pkg/core/services"
)

// AddMemberCmd creates the addMember command
func AddMemberCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addMember <name>",
		Short: "Add a new member to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			member, err := services.AddMember(app.Ctx, app.Store, app.Logger, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("\n✓ Member added: %s (%s)\n\n", member.Name, member.ID)
			return nil
		},
	}
}

// ListMembersCmd creates the listMembers command
func ListMembersCmd(app *AppContext) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "listMembers",
		Short: "List roster members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := services.ListMembers(app.Ctx, app.Store, all)
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Println("\nNo members on the roster.")
				return nil
			}
			fmt.Printf("\nRoster (%d members):\n", len(members))
			for _, m := range members {
				status := "active"
				if m.Archived {
					status = "archived"
				}
				fmt.Printf("  %-20s %s\n", m.Name, status)
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include archived members")
	return cmd
}

// ArchiveMemberCmd creates the archiveMember command
func ArchiveMemberCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "archiveMember <name>",
		Short: "Archive a member (kept in past records, excluded from new assignments)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.resolveMember(args[0])
			if err != nil {
				return err
			}
			if !confirm(fmt.Sprintf("Archive %s? They stay in past records but won't show up for new assignments.", m.Name)) {
				fmt.Println("Aborted.")
				return nil
			}
			if err := services.ArchiveMember(app.Ctx, app.Store, app.Logger, m.ID); err != nil {
				return err
			}
			fmt.Printf("\n✓ %s archived\n\n", m.Name)
			return nil
		},
	}
}

// RestoreMemberCmd creates the restoreMember command
func RestoreMemberCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restoreMember <name>",
		Short: "Restore an archived member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.resolveMember(args[0])
			if err != nil {
				return err
			}
			if err := services.RestoreMember(app.Ctx, app.Store, app.Logger, m.ID); err != nil {
				return err
			}
			fmt.Printf("\n✓ %s restored\n\n", m.Name)
			return nil
		},
	}
}

// DeleteMemberCmd creates the deleteMember command
func DeleteMemberCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteMember <name>",
		Short: "Permanently remove a member from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.resolveMember(args[0])
			if err != nil {
				return err
			}
			if !confirm(fmt.Sprintf("Permanently delete %s? Past batch history is not rewritten.", m.Name)) {
				fmt.Println("Aborted.")
				return nil
			}
			if err := services.DeleteMember(app.Ctx, app.Store, app.Logger, m.ID); err != nil {
				return err
			}
			fmt.Printf("\n✓ %s deleted\n\n", m.Name)
			return nil
		},
	}
}
