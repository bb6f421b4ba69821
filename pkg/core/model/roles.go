package model

// Role identifies a role slot on a week's sheet. The set is closed;
// exclusivity rules are expressed by the static group table below rather
// than per-handler checks.
type Role string

const (
	RolePresenter       Role = "presenter"
	RoleHost            Role = "host"
	RoleIntro           Role = "intro"
	RoleFormat          Role = "format"
	RoleLinkSharer      Role = "linkSharer"
	RoleManager         Role = "manager"
	RoleReminder        Role = "reminder"
	RoleAttendanceTaker Role = "attendanceTaker"
	RoleContent         Role = "content"
	RoleGraphic         Role = "graphic"

	RoleAffirmative Role = "affirmative"
	RoleNegative    Role = "negative"

	RoleSpyAff  Role = "spyAff"
	RoleNoteAff Role = "noteAff"
	RoleSpyNeg  Role = "spyNeg"
	RoleNoteNeg Role = "noteNeg"

	RoleBackupPresenter  Role = "backupPresenter"
	RoleBackupHost       Role = "backupHost"
	RoleBackupIntro      Role = "backupIntro"
	RoleBackupFormat     Role = "backupFormat"
	RoleBackupLinkSharer Role = "backupLinkSharer"
	RoleBackupManager    Role = "backupManager"
	RoleBackupSpyAff     Role = "backupSpyAff"
	RoleBackupNoteAff    Role = "backupNoteAff"
	RoleBackupSpyNeg     Role = "backupSpyNeg"
	RoleBackupNoteNeg    Role = "backupNoteNeg"
)

// Group is an exclusivity tier. Within GroupAdmin a member may hold at most
// one slot; GroupTeam sets are mutually exclusive; GroupSub roles draw from
// their team and must differ from their paired sub-role. Backups carry no
// exclusivity.
type Group int

const (
	GroupNone Group = iota
	GroupAdmin
	GroupTeam
	GroupSub
)

var roleGroups = map[Role]Group{
	RolePresenter:       GroupAdmin,
	RoleHost:            GroupAdmin,
	RoleIntro:           GroupAdmin,
	RoleFormat:          GroupAdmin,
	RoleLinkSharer:      GroupAdmin,
	RoleManager:         GroupAdmin,
	RoleReminder:        GroupAdmin,
	RoleAttendanceTaker: GroupAdmin,
	RoleContent:         GroupAdmin,
	RoleGraphic:         GroupAdmin,

	RoleAffirmative: GroupTeam,
	RoleNegative:    GroupTeam,

	RoleSpyAff:  GroupSub,
	RoleNoteAff: GroupSub,
	RoleSpyNeg:  GroupSub,
	RoleNoteNeg: GroupSub,
}

// roleLabels are the human-readable names used in reports and option lists.
var roleLabels = map[Role]string{
	RolePresenter:        "Presenter",
	RoleHost:             "Host",
	RoleIntro:            "Introducer",
	RoleFormat:           "Format Manager",
	RoleLinkSharer:       "Link Sharer",
	RoleManager:          "Weekly Manager",
	RoleReminder:         "Reminder",
	RoleAttendanceTaker:  "Attendance Taker",
	RoleContent:          "Content Creator",
	RoleGraphic:          "Graphic Designer",
	RoleAffirmative:      "Affirmative Team",
	RoleNegative:         "Negative Team",
	RoleSpyAff:           "Spy Judge (Aff)",
	RoleNoteAff:          "Note-taker (Aff)",
	RoleSpyNeg:           "Spy Judge (Neg)",
	RoleNoteNeg:          "Note-taker (Neg)",
	RoleBackupPresenter:  "Backup Presenter",
	RoleBackupHost:       "Backup Host",
	RoleBackupIntro:      "Backup Intro",
	RoleBackupFormat:     "Backup Format",
	RoleBackupLinkSharer: "Backup Link Sharer",
	RoleBackupManager:    "Backup Weekly Manager",
	RoleBackupSpyAff:     "Backup Spy Judge (Aff)",
	RoleBackupNoteAff:    "Backup Note-taker (Aff)",
	RoleBackupSpyNeg:     "Backup Spy Judge (Neg)",
	RoleBackupNoteNeg:    "Backup Note-taker (Neg)",
}

// Group returns the exclusivity group of the role. Backups and unknown
// roles return GroupNone.
func (r Role) Group() Group {
	return roleGroups[r]
}

// Label returns the display label for the role.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// IsBackup reports whether the role is a backup slot.
func (r Role) IsBackup() bool {
	switch r {
	case RoleBackupPresenter, RoleBackupHost, RoleBackupIntro, RoleBackupFormat,
		RoleBackupLinkSharer, RoleBackupManager, RoleBackupSpyAff,
		RoleBackupNoteAff, RoleBackupSpyNeg, RoleBackupNoteNeg:
		return true
	}
	return false
}

// IsTeam reports whether the role is a team membership set.
func (r Role) IsTeam() bool {
	return r == RoleAffirmative || r == RoleNegative
}

// Team returns the team set a sub-role (or backup sub-role) draws its
// candidates from, or "" for roles not tied to a team.
func (r Role) Team() Role {
	switch r {
	case RoleSpyAff, RoleNoteAff, RoleBackupSpyAff, RoleBackupNoteAff:
		return RoleAffirmative
	case RoleSpyNeg, RoleNoteNeg, RoleBackupSpyNeg, RoleBackupNoteNeg:
		return RoleNegative
	}
	return ""
}

// Paired returns the other sub-role on the same team, or "" for roles
// without a pairing. Spy and note-taker on one team must name different
// members.
func (r Role) Paired() Role {
	switch r {
	case RoleSpyAff:
		return RoleNoteAff
	case RoleNoteAff:
		return RoleSpyAff
	case RoleSpyNeg:
		return RoleNoteNeg
	case RoleNoteNeg:
		return RoleSpyNeg
	}
	return ""
}

// Primary returns the primary slot a backup role shadows, or "".
func (r Role) Primary() Role {
	switch r {
	case RoleBackupPresenter:
		return RolePresenter
	case RoleBackupHost:
		return RoleHost
	case RoleBackupIntro:
		return RoleIntro
	case RoleBackupFormat:
		return RoleFormat
	case RoleBackupLinkSharer:
		return RoleLinkSharer
	case RoleBackupManager:
		return RoleManager
	case RoleBackupSpyAff:
		return RoleSpyAff
	case RoleBackupNoteAff:
		return RoleNoteAff
	case RoleBackupSpyNeg:
		return RoleSpyNeg
	case RoleBackupNoteNeg:
		return RoleNoteNeg
	}
	return ""
}

// AdminRoles lists the Group A singular slots for the given week kind.
// Break weeks schedule only content and graphic; session weeks carry the
// full administrative set, content and graphic included.
func AdminRoles(kind WeekKind) []Role {
	if kind == WeekBreak {
		return []Role{RoleContent, RoleGraphic}
	}
	return []Role{
		RolePresenter, RoleHost, RoleIntro, RoleFormat, RoleLinkSharer,
		RoleManager, RoleReminder, RoleAttendanceTaker, RoleContent,
		RoleGraphic,
	}
}

// LiveFor reports whether the role is scheduled at all on a week of the
// given kind. Break weeks carry only content and graphic.
func (r Role) LiveFor(kind WeekKind) bool {
	if kind != WeekBreak {
		return true
	}
	return r == RoleContent || r == RoleGraphic
}

// SubRoles lists the per-team sub-role slots.
func SubRoles() []Role {
	return []Role{RoleSpyAff, RoleNoteAff, RoleSpyNeg, RoleNoteNeg}
}

// BackupRoles lists the backup slots.
func BackupRoles() []Role {
	return []Role{
		RoleBackupPresenter, RoleBackupHost, RoleBackupIntro,
		RoleBackupFormat, RoleBackupLinkSharer, RoleBackupManager,
		RoleBackupSpyAff, RoleBackupNoteAff, RoleBackupSpyNeg,
		RoleBackupNoteNeg,
	}
}

// SingularRoles lists every singular slot on a sheet of the given kind,
// backups included.
func SingularRoles(kind WeekKind) []Role {
	roles := AdminRoles(kind)
	if kind == WeekBreak {
		return roles
	}
	roles = append(roles, SubRoles()...)
	return append(roles, BackupRoles()...)
}

// ParseRole returns the role for a wire key, reporting whether it is known.
func ParseRole(key string) (Role, bool) {
	r := Role(key)
	if _, ok := roleGroups[r]; ok {
		return r, true
	}
	if r.IsBackup() {
		return r, true
	}
	return "", false
}
