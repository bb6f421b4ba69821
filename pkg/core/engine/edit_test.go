package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
)

func TestApply_AssignDoesNotMutateInput(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()

	next, cascades, err := Apply(roster, model.WeekSession, sheet, Assign(model.RoleHost, "m1"))
	require.NoError(t, err)
	assert.Empty(t, cascades)
	assert.Equal(t, "m1", next.Host)
	assert.Equal(t, "", sheet.Host, "input sheet must stay untouched")
}

func TestApply_AssignEmptyClearsSlot(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.Set(model.RoleHost, "m1")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, Assign(model.RoleHost, ""))
	require.NoError(t, err)
	assert.Empty(t, cascades)
	assert.Equal(t, "", next.Host)
}

func TestApply_PresenterCascadeClearsEverything(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.Set(model.RoleHost, "m1")
	sheet.AddToTeam(model.RoleAffirmative, "m1")
	sheet.AddToTeam(model.RoleAffirmative, "m2")
	sheet.Set(model.RoleSpyAff, "m1")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, Assign(model.RolePresenter, "m1"))
	require.NoError(t, err)

	assert.Equal(t, "m1", next.Presenter)
	assert.Equal(t, "", next.Host)
	assert.Equal(t, "", next.SpyAff)
	assert.False(t, next.OnTeam(model.RoleAffirmative, "m1"))
	assert.True(t, next.OnTeam(model.RoleAffirmative, "m2"), "other members keep their seats")

	cleared := make(map[model.Role]bool)
	for _, c := range cascades {
		cleared[c.Role] = true
		assert.Equal(t, "m1", c.MemberID)
	}
	assert.True(t, cleared[model.RoleHost])
	assert.True(t, cleared[model.RoleSpyAff])
	assert.True(t, cleared[model.RoleAffirmative])
}

func TestApply_PresenterCascadeLeavesOthersAlone(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.Set(model.RoleHost, "m2")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, Assign(model.RolePresenter, "m1"))
	require.NoError(t, err)
	assert.Empty(t, cascades)
	assert.Equal(t, "m2", next.Host)
}

func TestApply_TeamAddSwitchesSides(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.AddToTeam(model.RoleNegative, "m1")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, TeamAdd(model.RoleAffirmative, "m1"))
	require.NoError(t, err)

	assert.True(t, next.OnTeam(model.RoleAffirmative, "m1"))
	assert.False(t, next.OnTeam(model.RoleNegative, "m1"))
	require.Len(t, cascades, 1)
	assert.Equal(t, model.RoleNegative, cascades[0].Role)
}

func TestApply_TeamAddWithSittingPresenter(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.Presenter = "m1"

	// Other members join teams freely.
	next, _, err := Apply(roster, model.WeekSession, sheet, TeamAdd(model.RoleAffirmative, "m2"))
	require.NoError(t, err)
	assert.True(t, next.OnTeam(model.RoleAffirmative, "m2"))
	assert.Equal(t, "m1", next.Presenter)

	// The presenter themself is refused.
	_, _, err = Apply(roster, model.WeekSession, sheet, TeamAdd(model.RoleAffirmative, "m1"))
	assert.ErrorIs(t, err, ErrIneligible)
}

func TestApply_TeamRemoveDropsOrphanedSubRoles(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.AddToTeam(model.RoleAffirmative, "m1")
	sheet.AddToTeam(model.RoleAffirmative, "m2")
	sheet.Set(model.RoleSpyAff, "m1")
	sheet.Set(model.RoleNoteAff, "m2")
	sheet.Set(model.RoleBackupSpyAff, "m2")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, TeamRemove(model.RoleAffirmative, "m1"))
	require.NoError(t, err)

	assert.Equal(t, "", next.SpyAff, "spy slot orphaned by leaving the team")
	assert.Equal(t, "m2", next.NoteAff, "note-taker still backed by the team")
	assert.Equal(t, "m2", next.BackupSpyAff)
	require.Len(t, cascades, 1)
	assert.Equal(t, model.RoleSpyAff, cascades[0].Role)
	assert.Equal(t, "m1", cascades[0].MemberID)
}

func TestApply_TeamSwitchDropsSubRolesOnOldSide(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.AddToTeam(model.RoleNegative, "m1")
	sheet.Set(model.RoleSpyNeg, "m1")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, TeamAdd(model.RoleAffirmative, "m1"))
	require.NoError(t, err)

	assert.Equal(t, "", next.SpyNeg)
	assert.True(t, next.OnTeam(model.RoleAffirmative, "m1"))

	roles := make([]model.Role, 0, len(cascades))
	for _, c := range cascades {
		roles = append(roles, c.Role)
	}
	assert.Contains(t, roles, model.RoleNegative)
	assert.Contains(t, roles, model.RoleSpyNeg)
}

func TestApply_SubRolePairMustDiffer(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.AddToTeam(model.RoleAffirmative, "m1")
	sheet.AddToTeam(model.RoleAffirmative, "m2")
	sheet.Set(model.RoleSpyAff, "m1")

	// Assigning the same member as note-taker steals them from the spy
	// slot: newest edit wins.
	next, cascades, err := Apply(roster, model.WeekSession, sheet, Assign(model.RoleNoteAff, "m1"))
	require.NoError(t, err)

	assert.Equal(t, "m1", next.NoteAff)
	assert.Equal(t, "", next.SpyAff)
	require.Len(t, cascades, 1)
	assert.Equal(t, model.RoleSpyAff, cascades[0].Role)
}

func TestApply_SubRoleRequiresTeamMembership(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()

	_, _, err := Apply(roster, model.WeekSession, sheet, Assign(model.RoleSpyAff, "m1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIneligible)
}

func TestApply_AdminReassignClearsOldSlot(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.Set(model.RoleHost, "m1")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, Assign(model.RoleIntro, "m1"))
	require.NoError(t, err)

	assert.Equal(t, "m1", next.Intro)
	assert.Equal(t, "", next.Host)
	require.Len(t, cascades, 1)
	assert.Equal(t, model.RoleHost, cascades[0].Role)
}

func TestApply_BackupAssignHasNoCascade(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.Set(model.RoleHost, "m1")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, Assign(model.RoleBackupPresenter, "m1"))
	require.NoError(t, err)

	assert.Empty(t, cascades)
	assert.Equal(t, "m1", next.BackupPresenter)
	assert.Equal(t, "m1", next.Host, "primary slot untouched")
}

func TestApply_BreakWeekContentGraphicExclusion(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.Set(model.RoleContent, "m1")

	next, cascades, err := Apply(roster, model.WeekBreak, sheet, Assign(model.RoleGraphic, "m1"))
	require.NoError(t, err)

	assert.Equal(t, "m1", next.Graphic)
	assert.Equal(t, "", next.Content)
	require.Len(t, cascades, 1)
	assert.Equal(t, model.RoleContent, cascades[0].Role)
}

func TestApply_SessionWeekAdminExclusivityCoversWholeGroup(t *testing.T) {
	roster := testRoster()

	// Every pair of administrative slots is mutually exclusive on a
	// session week, content and graphic included.
	for _, first := range model.AdminRoles(model.WeekSession) {
		for _, second := range model.AdminRoles(model.WeekSession) {
			if first == second {
				continue
			}
			sheet := model.NewRoleSheet()

			next, _, err := Apply(roster, model.WeekSession, sheet, Assign(first, "m1"))
			require.NoError(t, err)
			next, cascades, err := Apply(roster, model.WeekSession, next, Assign(second, "m1"))
			require.NoError(t, err)

			assert.Equal(t, "", next.Get(first),
				"%s must be cleared when m1 takes %s", first, second)
			assert.Equal(t, "m1", next.Get(second))
			require.Len(t, cascades, 1)
			assert.Equal(t, first, cascades[0].Role)
		}
	}
}

func TestApply_BreakWeekRejectsSessionRoles(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()

	_, _, err := Apply(roster, model.WeekBreak, sheet, Assign(model.RoleHost, "m1"))
	assert.ErrorIs(t, err, ErrRoleNotScheduled)

	_, _, err = Apply(roster, model.WeekBreak, sheet, TeamAdd(model.RoleAffirmative, "m1"))
	assert.ErrorIs(t, err, ErrRoleNotScheduled)

	// Clearing a stale slot left behind by migrated data stays allowed.
	sheet.Set(model.RoleHost, "m1")
	next, _, err := Apply(roster, model.WeekBreak, sheet, Assign(model.RoleHost, ""))
	require.NoError(t, err)
	assert.Equal(t, "", next.Host)
}

func TestApply_LeaveAddSweepsAllRoles(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.Set(model.RoleHost, "m1")
	sheet.AddToTeam(model.RoleNegative, "m1")
	sheet.Set(model.RoleBackupManager, "m1")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, LeaveAdd("m1"))
	require.NoError(t, err)

	assert.True(t, next.IsOnLeave("m1"))
	assert.Equal(t, "", next.Host)
	assert.Equal(t, "", next.BackupManager)
	assert.False(t, next.OnTeam(model.RoleNegative, "m1"))
	assert.Len(t, cascades, 3)
}

func TestApply_LeaveRemoveRestoresNothing(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.AddLeave("m1")

	next, cascades, err := Apply(roster, model.WeekSession, sheet, LeaveRemove("m1"))
	require.NoError(t, err)

	assert.False(t, next.IsOnLeave("m1"))
	assert.Empty(t, cascades, "cleared roles stay cleared")
}

func TestApply_AssignOnLeaveMemberRejected(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.AddLeave("m1")

	_, _, err := Apply(roster, model.WeekSession, sheet, Assign(model.RoleHost, "m1"))
	assert.ErrorIs(t, err, ErrIneligible)
}

func TestApply_AssignArchivedMemberRejected(t *testing.T) {
	roster := testRoster()
	roster[0].Archived = true
	sheet := model.NewRoleSheet()

	_, _, err := Apply(roster, model.WeekSession, sheet, Assign(model.RoleHost, "m1"))
	assert.ErrorIs(t, err, ErrIneligible)
}

func TestApply_AssignUnknownMemberRejected(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()

	_, _, err := Apply(roster, model.WeekSession, sheet, Assign(model.RoleHost, "ghost"))
	assert.ErrorIs(t, err, ErrIneligible)
}

func TestApply_ResetReturnsEmptyTemplate(t *testing.T) {
	roster := testRoster()
	sheet := model.NewRoleSheet()
	sheet.Set(model.RoleHost, "m1")
	sheet.AddToTeam(model.RoleAffirmative, "m2")
	sheet.AddLeave("m3")
	sheet.MasterLinks["zoomLink"] = "https://example.com/zoom"

	next, cascades, err := Apply(roster, model.WeekSession, sheet, Reset())
	require.NoError(t, err)

	assert.Empty(t, cascades)
	assert.Equal(t, model.NewRoleSheet(), next)
	assert.Equal(t, "m1", sheet.Host, "input untouched")
}
