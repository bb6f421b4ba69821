package engine

import "github.com/nyeinlwin/clubsched/pkg/core/model"

// Cleanup is the self-healing pre-pass run before every render and edit: it
// clears every slot, team entry, and backup naming an on-leave member,
// drops sub-roles no longer backed by their team, and restores team
// exclusivity. It repairs sheets left inconsistent by schema migration or
// manual data edits, and it is idempotent: a second run on its own output
// produces no cascades.
func Cleanup(sheet *model.RoleSheet) (*model.RoleSheet, []Cascade) {
	next := sheet.Clone()
	var cascades []Cascade

	// Team exclusivity: a member listed on both sides stays on the
	// affirmative team, the later set loses.
	for _, id := range next.Team(model.RoleAffirmative) {
		if next.OnTeam(model.RoleNegative, id) {
			next.RemoveFromTeam(model.RoleNegative, id)
			cascades = append(cascades, Cascade{
				Role: model.RoleNegative, MemberID: id,
				Reason: "already on the " + model.RoleAffirmative.Label(),
			})
		}
	}

	// Leave enforcement: a member on leave holds nothing.
	cascades = append(cascades, sweepLeave(next)...)

	// Sub-roles must be backed by their team.
	cascades = append(cascades, dropOrphanedSubRoles(next, model.RoleAffirmative)...)
	cascades = append(cascades, dropOrphanedSubRoles(next, model.RoleNegative)...)

	return next, cascades
}

// sweepLeave clears every appearance of each on-leave member: all singular
// slots including backups, and both team sets. Every slot is swept
// regardless of the week's kind so values left behind by migrated data are
// cleared too.
func sweepLeave(sheet *model.RoleSheet) []Cascade {
	slots := model.SingularRoles(model.WeekSession)
	var cascades []Cascade
	for _, id := range sheet.OnLeave {
		for _, r := range slots {
			if sheet.Get(r) == id {
				sheet.Set(r, "")
				cascades = append(cascades, Cascade{Role: r, MemberID: id, Reason: "on leave"})
			}
		}
		for _, team := range []model.Role{model.RoleAffirmative, model.RoleNegative} {
			if sheet.OnTeam(team, id) {
				sheet.RemoveFromTeam(team, id)
				cascades = append(cascades, Cascade{Role: team, MemberID: id, Reason: "on leave"})
			}
		}
	}
	return cascades
}
