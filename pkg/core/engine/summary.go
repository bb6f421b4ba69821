package engine

import "github.com/nyeinlwin/clubsched/pkg/core/model"

// MemberSummary is the derived per-member view of one week's sheet: which
// slots the member holds, which team they are on, and whether option lists
// should disable them. Pure projection, never stored.
type MemberSummary struct {
	Member  model.Member `json:"member"`
	Roles   []model.Role `json:"roles"`
	Teams   []model.Role `json:"teams"`
	OnLeave bool         `json:"onLeave"`
}

// Busy reports whether the member holds any non-backup singular slot.
func (s MemberSummary) Busy() bool {
	for _, r := range s.Roles {
		if !r.IsBackup() {
			return true
		}
	}
	return false
}

// Label returns the display label of the first role held, or "".
func (s MemberSummary) Label() string {
	if len(s.Roles) == 0 {
		return ""
	}
	return s.Roles[0].Label()
}

// Summarize computes the assignment summary for every roster member, in
// roster order.
func Summarize(roster []model.Member, kind model.WeekKind, sheet *model.RoleSheet) []MemberSummary {
	slots := model.SingularRoles(kind)

	summaries := make([]MemberSummary, 0, len(roster))
	for _, m := range roster {
		s := MemberSummary{Member: m, OnLeave: sheet.IsOnLeave(m.ID)}
		for _, r := range slots {
			if sheet.Get(r) == m.ID {
				s.Roles = append(s.Roles, r)
			}
		}
		for _, team := range []model.Role{model.RoleAffirmative, model.RoleNegative} {
			if sheet.OnTeam(team, m.ID) {
				s.Teams = append(s.Teams, team)
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}
