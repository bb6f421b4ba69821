package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/engine"
	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

// AssignmentResult reports the outcome of one assignment edit.
type AssignmentResult struct {
	Sheet    *model.RoleSheet
	Cascades []engine.Cascade
}

// ApplyAssignment applies one edit to the addressed week: the self-healing
// cleanup pre-pass runs first, then the edit with its cascade clears, and
// the whole batches collection is persisted back. Cascades are reported,
// never errors.
func ApplyAssignment(ctx context.Context, s store.Store, logger *zap.Logger, batchID string, weekIdx int, edit engine.Edit) (*AssignmentResult, error) {
	roster, err := store.LoadMembers(ctx, s)
	if err != nil {
		return nil, err
	}

	batches, err := store.LoadBatches(ctx, s)
	if err != nil {
		return nil, err
	}

	batch := FindBatch(batches, batchID)
	if batch == nil {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	if weekIdx < 0 || weekIdx >= len(batch.Weeks) {
		return nil, fmt.Errorf("%w: %d", ErrWeekOutOfRange, weekIdx)
	}
	week := batch.Weeks[weekIdx]

	sheet, healed := engine.Cleanup(week.Roles)
	for _, c := range healed {
		logger.Info("Assignment healed before edit",
			zap.String("role", string(c.Role)),
			zap.String("member", c.MemberID),
			zap.String("reason", c.Reason))
	}

	sheet, cascades, err := engine.Apply(roster, week.Kind, sheet, edit)
	if err != nil {
		return nil, err
	}

	week.Roles = sheet
	if err := store.SaveBatches(ctx, s, batches); err != nil {
		return nil, err
	}

	for _, c := range cascades {
		logger.Info("Assignment cascade",
			zap.String("role", string(c.Role)),
			zap.String("member", c.MemberID),
			zap.String("reason", c.Reason))
	}

	return &AssignmentResult{
		Sheet:    sheet,
		Cascades: append(healed, cascades...),
	}, nil
}

// WeekOptions computes the eligible candidates for every live slot of the
// addressed week, after the cleanup pre-pass. The view layer renders these
// directly.
type WeekOptions struct {
	Week      *model.Week
	Sheet     *model.RoleSheet
	Eligible  map[model.Role][]model.Member
	Summaries []engine.MemberSummary
}

// LoadWeekOptions loads state, self-heals the sheet (persisting any
// repairs), and derives the option lists and member summaries for a week.
func LoadWeekOptions(ctx context.Context, s store.Store, logger *zap.Logger, batchID string, weekIdx int) (*WeekOptions, error) {
	roster, err := store.LoadMembers(ctx, s)
	if err != nil {
		return nil, err
	}

	batches, err := store.LoadBatches(ctx, s)
	if err != nil {
		return nil, err
	}

	batch := FindBatch(batches, batchID)
	if batch == nil {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	if weekIdx < 0 || weekIdx >= len(batch.Weeks) {
		return nil, fmt.Errorf("%w: %d", ErrWeekOutOfRange, weekIdx)
	}
	week := batch.Weeks[weekIdx]

	sheet, healed := engine.Cleanup(week.Roles)
	if len(healed) > 0 {
		week.Roles = sheet
		if err := store.SaveBatches(ctx, s, batches); err != nil {
			return nil, err
		}
		logger.Info("Assignments healed on load",
			zap.String("batch", batchID), zap.Int("week", weekIdx),
			zap.Int("cascades", len(healed)))
	}

	eligible := make(map[model.Role][]model.Member)
	for _, r := range model.AdminRoles(week.Kind) {
		eligible[r] = engine.Eligible(roster, week.Kind, sheet, r)
	}
	if week.Kind == model.WeekSession {
		for _, r := range []model.Role{model.RoleAffirmative, model.RoleNegative} {
			eligible[r] = engine.Eligible(roster, week.Kind, sheet, r)
		}
		for _, r := range model.SubRoles() {
			eligible[r] = engine.Eligible(roster, week.Kind, sheet, r)
		}
		for _, r := range model.BackupRoles() {
			eligible[r] = engine.Eligible(roster, week.Kind, sheet, r)
		}
	}

	return &WeekOptions{
		Week:      week,
		Sheet:     sheet,
		Eligible:  eligible,
		Summaries: engine.Summarize(roster, week.Kind, sheet),
	}, nil
}
