package engine

import (
	"errors"
	"fmt"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
)

// ErrIneligible rejects an edit naming a member who must not have been
// offered as an option (archived, on leave, or unknown). A defensive check:
// the UI filters options through Eligible, so hitting this means stale
// state rather than user error.
var ErrIneligible = errors.New("member is not eligible for this role")

// ErrRoleNotScheduled rejects edits naming a role the week's kind does not
// carry, such as host on a break week.
var ErrRoleNotScheduled = errors.New("role is not scheduled this week")

// Op is the kind of edit applied to a role sheet.
type Op int

const (
	OpAssign Op = iota
	OpTeamAdd
	OpTeamRemove
	OpLeaveAdd
	OpLeaveRemove
	OpReset
)

// Edit is a single mutation of a role sheet.
type Edit struct {
	Op       Op
	Role     model.Role
	MemberID string
}

// Assign binds a member to a singular slot; an empty member ID clears it.
func Assign(role model.Role, memberID string) Edit {
	return Edit{Op: OpAssign, Role: role, MemberID: memberID}
}

// TeamAdd adds a member to a team set.
func TeamAdd(team model.Role, memberID string) Edit {
	return Edit{Op: OpTeamAdd, Role: team, MemberID: memberID}
}

// TeamRemove removes a member from a team set.
func TeamRemove(team model.Role, memberID string) Edit {
	return Edit{Op: OpTeamRemove, Role: team, MemberID: memberID}
}

// LeaveAdd marks a member on leave for the week.
func LeaveAdd(memberID string) Edit {
	return Edit{Op: OpLeaveAdd, MemberID: memberID}
}

// LeaveRemove clears a member's leave flag.
func LeaveRemove(memberID string) Edit {
	return Edit{Op: OpLeaveRemove, MemberID: memberID}
}

// Reset replaces the sheet with the empty template.
func Reset() Edit {
	return Edit{Op: OpReset}
}

// Cascade records one automatic clear performed while applying an edit.
type Cascade struct {
	Role     model.Role `json:"role"`
	MemberID string     `json:"memberId"`
	Reason   string     `json:"reason"`
}

// Apply applies one edit to the sheet and resolves every invariant
// violation it introduces by cascade-clearing the conflicting slots. The
// input sheet is not modified; the returned sheet and cascade log describe
// the outcome. Constraint conflicts are never errors.
func Apply(roster []model.Member, kind model.WeekKind, sheet *model.RoleSheet, edit Edit) (*model.RoleSheet, []Cascade, error) {
	next := sheet.Clone()

	switch edit.Op {
	case OpReset:
		return model.NewRoleSheet(), nil, nil

	case OpLeaveRemove:
		next.RemoveLeave(edit.MemberID)
		return next, nil, nil

	case OpLeaveAdd:
		next.AddLeave(edit.MemberID)
		cascades := sweepLeave(next)
		return next, cascades, nil

	case OpTeamRemove:
		if !edit.Role.IsTeam() {
			return nil, nil, fmt.Errorf("cannot remove from non-team role %q", edit.Role)
		}
		next.RemoveFromTeam(edit.Role, edit.MemberID)
		cascades := dropOrphanedSubRoles(next, edit.Role)
		return next, cascades, nil

	case OpTeamAdd:
		if !edit.Role.IsTeam() {
			return nil, nil, fmt.Errorf("cannot add to non-team role %q", edit.Role)
		}
		if !edit.Role.LiveFor(kind) {
			return nil, nil, fmt.Errorf("%w: %q", ErrRoleNotScheduled, edit.Role)
		}
		if err := checkEligible(roster, kind, next, edit.Role, edit.MemberID); err != nil {
			return nil, nil, err
		}
		var cascades []Cascade
		// Team exclusivity: joining one side leaves the other.
		other := opposingTeam(edit.Role)
		if next.OnTeam(other, edit.MemberID) {
			next.RemoveFromTeam(other, edit.MemberID)
			cascades = append(cascades, Cascade{
				Role: other, MemberID: edit.MemberID,
				Reason: "moved to opposing team",
			})
			cascades = append(cascades, dropOrphanedSubRoles(next, other)...)
		}
		next.AddToTeam(edit.Role, edit.MemberID)
		return next, cascades, nil

	case OpAssign:
		slot := edit.Role
		if slot.IsTeam() {
			return nil, nil, fmt.Errorf("team role %q requires a team edit", slot)
		}
		if edit.MemberID == "" {
			next.Set(slot, "")
			return next, nil, nil
		}
		if !slot.LiveFor(kind) {
			return nil, nil, fmt.Errorf("%w: %q", ErrRoleNotScheduled, slot)
		}
		if err := checkEligible(roster, kind, next, slot, edit.MemberID); err != nil {
			return nil, nil, err
		}
		next.Set(slot, edit.MemberID)
		return next, cascadeAssign(next, kind, slot, edit.MemberID), nil
	}

	return nil, nil, fmt.Errorf("unknown edit op %d", edit.Op)
}

// checkEligible rejects members the options list would not have offered:
// unknown IDs, archived members not already holding the slot, members on
// leave, the presenter joining a team, and sub-roles without team backing.
// Busy members pass; exclusivity conflicts are resolved by cascade instead.
func checkEligible(roster []model.Member, kind model.WeekKind, sheet *model.RoleSheet, role model.Role, memberID string) error {
	m := model.FindMemberByID(roster, memberID)
	if m == nil {
		return fmt.Errorf("%w: unknown member %q", ErrIneligible, memberID)
	}
	if m.Archived && !holdsRole(sheet, role, memberID) {
		return fmt.Errorf("%w: %s is archived", ErrIneligible, m.Name)
	}
	if sheet.IsOnLeave(memberID) {
		return fmt.Errorf("%w: %s is on leave", ErrIneligible, m.Name)
	}
	if role.IsTeam() && sheet.Presenter == memberID {
		return fmt.Errorf("%w: %s is the presenter", ErrIneligible, m.Name)
	}
	if team := role.Team(); team != "" {
		if !sheet.OnTeam(team, memberID) {
			return fmt.Errorf("%w: %s is not on the %s", ErrIneligible, m.Name, team.Label())
		}
	}
	return nil
}

// cascadeAssign resolves the conflicts introduced by writing memberID into
// slot.
func cascadeAssign(sheet *model.RoleSheet, kind model.WeekKind, slot model.Role, memberID string) []Cascade {
	var cascades []Cascade

	clear := func(r model.Role, reason string) {
		if r != slot && sheet.Get(r) == memberID {
			sheet.Set(r, "")
			cascades = append(cascades, Cascade{Role: r, MemberID: memberID, Reason: reason})
		}
	}

	switch {
	case slot == model.RolePresenter:
		// Presenter assignment always wins: the same member is cleared
		// from every other administrative slot, both sub-role pairs, and
		// both teams.
		for _, r := range model.AdminRoles(kind) {
			clear(r, "assigned as presenter")
		}
		for _, r := range model.SubRoles() {
			clear(r, "assigned as presenter")
		}
		for _, team := range []model.Role{model.RoleAffirmative, model.RoleNegative} {
			if sheet.OnTeam(team, memberID) {
				sheet.RemoveFromTeam(team, memberID)
				cascades = append(cascades, Cascade{
					Role: team, MemberID: memberID, Reason: "assigned as presenter",
				})
				cascades = append(cascades, dropOrphanedSubRoles(sheet, team)...)
			}
		}

	case slot.Group() == model.GroupSub:
		// Spy and note-taker on one team must differ; the newest edit
		// wins and the stale pair is cleared.
		clear(slot.Paired(), "taken by paired sub-role")
		// A member cannot hold two administrative slots at once.
		for _, r := range model.AdminRoles(kind) {
			clear(r, "reassigned to "+slot.Label())
		}

	case slot.IsBackup():
		// Backups carry no exclusivity against other roles.

	default:
		// Remaining administrative slots are mutually exclusive with each
		// other and with the sub-roles.
		for _, r := range model.AdminRoles(kind) {
			clear(r, "reassigned to "+slot.Label())
		}
		if kind != model.WeekBreak {
			for _, r := range model.SubRoles() {
				clear(r, "reassigned to "+slot.Label())
			}
		}
	}

	return cascades
}

// dropOrphanedSubRoles clears sub-roles (and their backups) no longer
// backed by membership of their team.
func dropOrphanedSubRoles(sheet *model.RoleSheet, team model.Role) []Cascade {
	var cascades []Cascade
	for _, r := range append(model.SubRoles(), model.BackupRoles()...) {
		if r.Team() != team {
			continue
		}
		id := sheet.Get(r)
		if id != "" && !sheet.OnTeam(team, id) {
			sheet.Set(r, "")
			cascades = append(cascades, Cascade{
				Role: r, MemberID: id, Reason: "left the " + team.Label(),
			})
		}
	}
	return cascades
}
