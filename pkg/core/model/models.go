package model

// WeeksPerBatch is the fixed length of a scheduling cycle. The last week of
// every batch is a break week with a reduced role schema.
const WeeksPerBatch = 5

// BatchStatus tracks the lifecycle of a batch. At most one batch in the
// collection is active at any time.
type BatchStatus string

const (
	BatchActive BatchStatus = "active"
	// BatchArchived uses the singular "archive" on the wire for
	// compatibility with data written by earlier schema versions.
	BatchArchived BatchStatus = "archive"
)

// WeekKind distinguishes regular debate sessions from break weeks, which
// only schedule the content and graphic roles.
type WeekKind string

const (
	WeekSession WeekKind = "session"
	WeekBreak   WeekKind = "break"
)

// Member is a club member on the roster. Role slots reference members by ID;
// the name is a display attribute only, so renames never orphan history.
type Member struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived,omitempty"`
}

// Link is a custom resource link attached to a week.
type Link struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category,omitempty"`
}

// Week is a single scheduled session within a batch.
type Week struct {
	Kind          WeekKind   `json:"kind"`
	Topic         string     `json:"topic"`
	Date          string     `json:"date,omitempty"`
	AudienceCount int        `json:"audienceCount"`
	Roles         *RoleSheet `json:"roles"`
	Links         []Link     `json:"links,omitempty"`
}

// Batch is a fixed five-week scheduling cycle. The batch exclusively owns
// its weeks and their role sheets.
type Batch struct {
	ID     string      `json:"id"`
	Status BatchStatus `json:"status"`
	Weeks  []*Week     `json:"weeks"`
}

// NewBatch builds an active batch with empty role sheets. dates may be nil
// or shorter than the batch; missing entries leave the week undated.
func NewBatch(id string, dates []string) *Batch {
	weeks := make([]*Week, WeeksPerBatch)
	for i := range weeks {
		kind := WeekSession
		if i == WeeksPerBatch-1 {
			kind = WeekBreak
		}
		w := &Week{
			Kind:  kind,
			Roles: NewRoleSheet(),
		}
		if i < len(dates) {
			w.Date = dates[i]
		}
		weeks[i] = w
	}
	return &Batch{
		ID:     id,
		Status: BatchActive,
		Weeks:  weeks,
	}
}

// FindMemberByID returns the member with the given ID, or nil.
func FindMemberByID(roster []Member, id string) *Member {
	for i := range roster {
		if roster[i].ID == id {
			return &roster[i]
		}
	}
	return nil
}

// DisplayName resolves a slot value to a member name. Values that do not
// match any roster member (legacy raw names, deleted members) are returned
// unchanged; dangling references are tolerated historical data.
func DisplayName(roster []Member, id string) string {
	if m := FindMemberByID(roster, id); m != nil {
		return m.Name
	}
	return id
}
