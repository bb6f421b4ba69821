package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

var (
	// ErrDuplicateName rejects a roster-add reusing an existing name.
	ErrDuplicateName = errors.New("member name already exists")
	// ErrMemberNotFound reports an unknown member ID.
	ErrMemberNotFound = errors.New("member not found")
)

// AddMember appends a new member to the roster. Names are trimmed and must
// be unique case-insensitively.
func AddMember(ctx context.Context, s store.Store, logger *zap.Logger, name string) (*model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("member name must not be empty")
	}

	members, err := store.LoadMembers(ctx, s)
	if err != nil {
		return nil, err
	}

	for _, m := range members {
		if strings.EqualFold(m.Name, name) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, m.Name)
		}
	}

	member := model.Member{
		ID:   uuid.New().String(),
		Name: name,
	}
	members = append(members, member)

	if err := store.SaveMembers(ctx, s, members); err != nil {
		return nil, err
	}

	logger.Info("Member added", zap.String("id", member.ID), zap.String("name", member.Name))
	return &member, nil
}

// ListMembers loads the roster. With includeArchived false only active
// members are returned, in roster order either way.
func ListMembers(ctx context.Context, s store.Store, includeArchived bool) ([]model.Member, error) {
	members, err := store.LoadMembers(ctx, s)
	if err != nil {
		return nil, err
	}
	if includeArchived {
		return members, nil
	}
	active := make([]model.Member, 0, len(members))
	for _, m := range members {
		if !m.Archived {
			active = append(active, m)
		}
	}
	return active, nil
}

// ArchiveMember soft-deletes a member: they stay valid in past records but
// stop appearing as a candidate for new assignments.
func ArchiveMember(ctx context.Context, s store.Store, logger *zap.Logger, memberID string) error {
	return setArchived(ctx, s, logger, memberID, true)
}

// RestoreMember clears a member's archived flag.
func RestoreMember(ctx context.Context, s store.Store, logger *zap.Logger, memberID string) error {
	return setArchived(ctx, s, logger, memberID, false)
}

func setArchived(ctx context.Context, s store.Store, logger *zap.Logger, memberID string, archived bool) error {
	members, err := store.LoadMembers(ctx, s)
	if err != nil {
		return err
	}

	m := model.FindMemberByID(members, memberID)
	if m == nil {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	m.Archived = archived

	if err := store.SaveMembers(ctx, s, members); err != nil {
		return err
	}

	logger.Info("Member archive flag updated",
		zap.String("id", m.ID), zap.String("name", m.Name), zap.Bool("archived", archived))
	return nil
}

// DeleteMember permanently removes a member from the roster. Historical
// assignments are not rewritten; slots still naming the member become
// dangling references and are tolerated.
func DeleteMember(ctx context.Context, s store.Store, logger *zap.Logger, memberID string) error {
	members, err := store.LoadMembers(ctx, s)
	if err != nil {
		return err
	}

	idx := -1
	for i := range members {
		if members[i].ID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}

	name := members[idx].Name
	members = append(members[:idx], members[idx+1:]...)

	if err := store.SaveMembers(ctx, s, members); err != nil {
		return err
	}

	logger.Info("Member permanently deleted", zap.String("id", memberID), zap.String("name", name))
	return nil
}

// FindMemberByName resolves a display name to a roster member,
// case-insensitively.
func FindMemberByName(members []model.Member, name string) *model.Member {
	for i := range members {
		if strings.EqualFold(members[i].Name, strings.TrimSpace(name)) {
			return &members[i]
		}
	}
	return nil
}

// SeedRoster populates the roster with the given names when the store holds
// no members yet. Returns the number of members created.
func SeedRoster(ctx context.Context, s store.Store, logger *zap.Logger, names []string) (int, error) {
	members, err := store.LoadMembers(ctx, s)
	if err != nil {
		return 0, err
	}
	if len(members) > 0 {
		return 0, nil
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || FindMemberByName(members, name) != nil {
			continue
		}
		members = append(members, model.Member{ID: uuid.New().String(), Name: name})
	}
	if len(members) == 0 {
		return 0, nil
	}

	if err := store.SaveMembers(ctx, s, members); err != nil {
		return 0, err
	}

	logger.Info("Roster seeded", zap.Int("count", len(members)))
	return len(members), nil
}
