// Package engine enforces the assignment invariants for a single week's
// role sheet: no double-booking inside the administrative group, team
// exclusivity, distinct sub-role pairs, presenter isolation, and leave
// enforcement. All functions are pure; callers own state and persistence.
package engine

import "github.com/nyeinlwin/clubsched/pkg/core/model"

// Eligible returns the members offered as candidates for a role slot, in
// roster insertion order.
//
// Archived members are hidden unless they already hold the slot being
// rendered, so historical data stays visible without becoming assignable
// elsewhere. Members on leave are never offered. Members bound to a
// mutually-exclusive slot stay in the list when they already hold the
// queried slot.
func Eligible(roster []model.Member, kind model.WeekKind, sheet *model.RoleSheet, role model.Role) []model.Member {
	var out []model.Member
	for _, m := range roster {
		if eligible(kind, sheet, role, m) {
			out = append(out, m)
		}
	}
	return out
}

func eligible(kind model.WeekKind, sheet *model.RoleSheet, role model.Role, m model.Member) bool {
	if !role.LiveFor(kind) {
		return false
	}
	holds := holdsRole(sheet, role, m.ID)

	// Archived members remain visible only in slots they already hold.
	if m.Archived && !holds {
		return false
	}
	if sheet.IsOnLeave(m.ID) {
		return false
	}
	if holds {
		return true
	}

	if role.IsTeam() {
		// The presenter never joins a team; the opposing team excludes.
		if sheet.Presenter == m.ID {
			return false
		}
		return !sheet.OnTeam(opposingTeam(role), m.ID)
	}

	// Sub-roles and their backups draw from their own team set.
	if team := role.Team(); team != "" {
		if !sheet.OnTeam(team, m.ID) {
			return false
		}
	}

	if role.IsBackup() {
		// Backups carry no exclusivity against other roles.
		return true
	}

	if role == model.RolePresenter {
		// Presenter assignment wins by cascade, so everyone present is
		// offered.
		return true
	}

	// Group A and sub-role slots: anyone already busy in another
	// mutually-exclusive slot is not offered.
	return !busyElsewhere(kind, sheet, role, m.ID)
}

// busyElsewhere reports whether the member holds a non-backup singular slot
// other than the one being rendered.
func busyElsewhere(kind model.WeekKind, sheet *model.RoleSheet, role model.Role, memberID string) bool {
	for _, r := range model.AdminRoles(kind) {
		if r != role && sheet.Get(r) == memberID {
			return true
		}
	}
	if kind == model.WeekBreak {
		return false
	}
	for _, r := range model.SubRoles() {
		if r != role && sheet.Get(r) == memberID {
			return true
		}
	}
	return false
}

func holdsRole(sheet *model.RoleSheet, role model.Role, memberID string) bool {
	if role.IsTeam() {
		return sheet.OnTeam(role, memberID)
	}
	return sheet.Get(role) == memberID
}

func opposingTeam(team model.Role) model.Role {
	if team == model.RoleAffirmative {
		return model.RoleNegative
	}
	return model.RoleAffirmative
}
