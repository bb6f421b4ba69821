package services

import (
	"fmt"
	"strings"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
)

// Attendance is the dashboard projection for one week: facilitators present
// (active roster minus on-leave), guest audience, and the combined total.
type Attendance struct {
	Facilitators int `json:"facilitators"`
	Guests       int `json:"guests"`
	Total        int `json:"total"`
}

// WeekAttendance computes the attendance numbers for a week.
func WeekAttendance(roster []model.Member, week *model.Week) Attendance {
	present := 0
	for _, m := range roster {
		if m.Archived {
			continue
		}
		if week.Roles != nil && week.Roles.IsOnLeave(m.ID) {
			continue
		}
		present++
	}
	return Attendance{
		Facilitators: present,
		Guests:       week.AudienceCount,
		Total:        present + week.AudienceCount,
	}
}

// RenderWeekReport builds the shareable plain-text summary of a week's
// assignments, resolving member IDs to names.
func RenderWeekReport(roster []model.Member, batch *model.Batch, weekIdx int) (string, error) {
	if weekIdx < 0 || weekIdx >= len(batch.Weeks) {
		return "", fmt.Errorf("%w: %d", ErrWeekOutOfRange, weekIdx)
	}
	week := batch.Weeks[weekIdx]
	sheet := week.Roles
	if sheet == nil {
		sheet = model.NewRoleSheet()
	}

	name := func(id string) string {
		if id == "" {
			return "-"
		}
		return model.DisplayName(roster, id)
	}
	teamNames := func(team model.Role) string {
		ids := sheet.Team(team)
		if len(ids) == 0 {
			return "-"
		}
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = model.DisplayName(roster, id)
		}
		return strings.Join(names, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s | Week %d\n", batch.ID, weekIdx+1)
	topic := week.Topic
	if topic == "" {
		topic = "-"
	}
	fmt.Fprintf(&b, "Topic: %s\n\n", topic)

	if week.Kind == model.WeekBreak {
		b.WriteString("Break Week Assignments:\n")
		fmt.Fprintf(&b, "- %s: %s\n", model.RoleContent.Label(), name(sheet.Content))
		fmt.Fprintf(&b, "- %s: %s\n", model.RoleGraphic.Label(), name(sheet.Graphic))
		return b.String(), nil
	}

	primaryBackup := func(role, backup model.Role) {
		fmt.Fprintf(&b, "%s: %s (Backup: %s)\n",
			role.Label(), name(sheet.Get(role)), name(sheet.Get(backup)))
	}

	primaryBackup(model.RolePresenter, model.RoleBackupPresenter)
	primaryBackup(model.RoleHost, model.RoleBackupHost)
	primaryBackup(model.RoleIntro, model.RoleBackupIntro)
	primaryBackup(model.RoleFormat, model.RoleBackupFormat)
	primaryBackup(model.RoleLinkSharer, model.RoleBackupLinkSharer)
	primaryBackup(model.RoleManager, model.RoleBackupManager)
	fmt.Fprintf(&b, "%s: %s\n", model.RoleReminder.Label(), name(sheet.Reminder))
	fmt.Fprintf(&b, "%s: %s\n", model.RoleAttendanceTaker.Label(), name(sheet.AttendanceTaker))

	fmt.Fprintf(&b, "\nAff: %s\nNeg: %s\n\n",
		teamNames(model.RoleAffirmative), teamNames(model.RoleNegative))

	primaryBackup(model.RoleSpyAff, model.RoleBackupSpyAff)
	primaryBackup(model.RoleNoteAff, model.RoleBackupNoteAff)
	primaryBackup(model.RoleSpyNeg, model.RoleBackupSpyNeg)
	primaryBackup(model.RoleNoteNeg, model.RoleBackupNoteNeg)

	return b.String(), nil
}
