package model

import "slices"

// MasterLinkSlots are the fixed-slot resource URLs carried on every sheet.
// Keys match the wire format written by earlier schema versions.
var MasterLinkSlots = []string{
	"zoomLink", "membershipForm", "topicSlides", "introSlides",
	"formatSlides", "zoomBackground", "feedbackForm", "sotdLink",
}

// RoleSheet is the role assignment for one week: every singular slot holds
// either "" or exactly one member ID, team fields hold member ID sets, and
// OnLeave lists members excluded from consideration this week.
type RoleSheet struct {
	Presenter   string   `json:"presenter"`
	Affirmative []string `json:"affirmative"`
	Negative    []string `json:"negative"`

	SpyAff  string `json:"spyAff"`
	SpyNeg  string `json:"spyNeg"`
	NoteAff string `json:"noteAff"`
	NoteNeg string `json:"noteNeg"`

	Host            string `json:"host"`
	Intro           string `json:"intro"`
	Format          string `json:"format"`
	LinkSharer      string `json:"linkSharer"`
	Manager         string `json:"manager"`
	Reminder        string `json:"reminder"`
	AttendanceTaker string `json:"attendanceTaker"`

	Content string `json:"content"`
	Graphic string `json:"graphic"`

	BackupPresenter  string `json:"backupPresenter"`
	BackupHost       string `json:"backupHost"`
	BackupManager    string `json:"backupManager"`
	BackupLinkSharer string `json:"backupLinkSharer"`
	BackupIntro      string `json:"backupIntro"`
	BackupFormat     string `json:"backupFormat"`
	BackupSpyAff     string `json:"backupSpyAff"`
	BackupNoteAff    string `json:"backupNoteAff"`
	BackupSpyNeg     string `json:"backupSpyNeg"`
	BackupNoteNeg    string `json:"backupNoteNeg"`

	OnLeave []string `json:"onLeave"`

	MasterLinks map[string]string `json:"masterLinks,omitempty"`
}

// NewRoleSheet returns the empty sheet template. The same template serves
// both week kinds; the week's kind governs which slots are live.
// Missing-field migration back-fills against this template.
func NewRoleSheet() *RoleSheet {
	return &RoleSheet{
		Affirmative: []string{},
		Negative:    []string{},
		OnLeave:     []string{},
		MasterLinks: map[string]string{},
	}
}

// slot returns the storage for a singular role, or nil for team roles and
// unknown keys.
func (s *RoleSheet) slot(r Role) *string {
	switch r {
	case RolePresenter:
		return &s.Presenter
	case RoleHost:
		return &s.Host
	case RoleIntro:
		return &s.Intro
	case RoleFormat:
		return &s.Format
	case RoleLinkSharer:
		return &s.LinkSharer
	case RoleManager:
		return &s.Manager
	case RoleReminder:
		return &s.Reminder
	case RoleAttendanceTaker:
		return &s.AttendanceTaker
	case RoleContent:
		return &s.Content
	case RoleGraphic:
		return &s.Graphic
	case RoleSpyAff:
		return &s.SpyAff
	case RoleNoteAff:
		return &s.NoteAff
	case RoleSpyNeg:
		return &s.SpyNeg
	case RoleNoteNeg:
		return &s.NoteNeg
	case RoleBackupPresenter:
		return &s.BackupPresenter
	case RoleBackupHost:
		return &s.BackupHost
	case RoleBackupIntro:
		return &s.BackupIntro
	case RoleBackupFormat:
		return &s.BackupFormat
	case RoleBackupLinkSharer:
		return &s.BackupLinkSharer
	case RoleBackupManager:
		return &s.BackupManager
	case RoleBackupSpyAff:
		return &s.BackupSpyAff
	case RoleBackupNoteAff:
		return &s.BackupNoteAff
	case RoleBackupSpyNeg:
		return &s.BackupSpyNeg
	case RoleBackupNoteNeg:
		return &s.BackupNoteNeg
	}
	return nil
}

// Get returns the member ID held by a singular slot ("" when unassigned or
// the role is not singular).
func (s *RoleSheet) Get(r Role) string {
	if p := s.slot(r); p != nil {
		return *p
	}
	return ""
}

// Set writes a singular slot. Setting "" clears it. Team roles are managed
// through AddToTeam/RemoveFromTeam.
func (s *RoleSheet) Set(r Role, memberID string) {
	if p := s.slot(r); p != nil {
		*p = memberID
	}
}

// Team returns the membership set for a team role, or nil.
func (s *RoleSheet) Team(r Role) []string {
	switch r {
	case RoleAffirmative:
		return s.Affirmative
	case RoleNegative:
		return s.Negative
	}
	return nil
}

// OnTeam reports whether the member is on the given team.
func (s *RoleSheet) OnTeam(team Role, memberID string) bool {
	return slices.Contains(s.Team(team), memberID)
}

// AddToTeam appends a member to a team set if not already present.
func (s *RoleSheet) AddToTeam(team Role, memberID string) {
	if s.OnTeam(team, memberID) {
		return
	}
	switch team {
	case RoleAffirmative:
		s.Affirmative = append(s.Affirmative, memberID)
	case RoleNegative:
		s.Negative = append(s.Negative, memberID)
	}
}

// RemoveFromTeam removes a member from a team set.
func (s *RoleSheet) RemoveFromTeam(team Role, memberID string) {
	switch team {
	case RoleAffirmative:
		s.Affirmative = remove(s.Affirmative, memberID)
	case RoleNegative:
		s.Negative = remove(s.Negative, memberID)
	}
}

// IsOnLeave reports whether the member is marked on leave this week.
func (s *RoleSheet) IsOnLeave(memberID string) bool {
	return slices.Contains(s.OnLeave, memberID)
}

// AddLeave marks a member on leave for this week.
func (s *RoleSheet) AddLeave(memberID string) {
	if !s.IsOnLeave(memberID) {
		s.OnLeave = append(s.OnLeave, memberID)
	}
}

// RemoveLeave clears a member's leave flag for this week.
func (s *RoleSheet) RemoveLeave(memberID string) {
	s.OnLeave = remove(s.OnLeave, memberID)
}

// Clone returns a deep copy of the sheet.
func (s *RoleSheet) Clone() *RoleSheet {
	dup := *s
	dup.Affirmative = slices.Clone(s.Affirmative)
	dup.Negative = slices.Clone(s.Negative)
	dup.OnLeave = slices.Clone(s.OnLeave)
	if s.MasterLinks != nil {
		dup.MasterLinks = make(map[string]string, len(s.MasterLinks))
		for k, v := range s.MasterLinks {
			dup.MasterLinks[k] = v
		}
	}
	return &dup
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
