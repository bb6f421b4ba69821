package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

// MigrateBatches is the idempotent load-time schema-upgrade pass: every
// week written by an older schema version is back-filled in place against
// the current empty-sheet template, and legacy slots holding raw member
// names are rewritten to stable member IDs where a roster match exists.
// The collection is saved only when something changed. Run before any
// editing occurs.
func MigrateBatches(ctx context.Context, s store.Store, logger *zap.Logger, roster []model.Member) (bool, error) {
	batches, err := store.LoadBatches(ctx, s)
	if err != nil {
		return false, err
	}

	changed := false
	for _, b := range batches {
		if migrateBatch(b, roster) {
			changed = true
		}
	}

	if !changed {
		return false, nil
	}

	if err := store.SaveBatches(ctx, s, batches); err != nil {
		return false, err
	}

	logger.Info("Batch schema migrated", zap.Int("batches", len(batches)))
	return true, nil
}

func migrateBatch(b *model.Batch, roster []model.Member) bool {
	changed := false

	if b.Status != model.BatchActive && b.Status != model.BatchArchived {
		b.Status = model.BatchArchived
		changed = true
	}

	for i, w := range b.Weeks {
		if w == nil {
			continue
		}

		// Older schema versions carried no week kind; the last week of a
		// batch was implicitly the break week.
		if w.Kind != model.WeekSession && w.Kind != model.WeekBreak {
			w.Kind = model.WeekSession
			if i == model.WeeksPerBatch-1 {
				w.Kind = model.WeekBreak
			}
			changed = true
		}

		if w.Roles == nil {
			w.Roles = model.NewRoleSheet()
			changed = true
			continue
		}

		if migrateSheet(w.Roles, roster) {
			changed = true
		}
	}

	return changed
}

func migrateSheet(sheet *model.RoleSheet, roster []model.Member) bool {
	changed := false

	if sheet.Affirmative == nil {
		sheet.Affirmative = []string{}
		changed = true
	}
	if sheet.Negative == nil {
		sheet.Negative = []string{}
		changed = true
	}
	if sheet.OnLeave == nil {
		sheet.OnLeave = []string{}
		changed = true
	}
	if sheet.MasterLinks == nil {
		sheet.MasterLinks = map[string]string{}
		changed = true
	}

	// Legacy data stored member names in role slots. Rewrite to IDs where
	// the name still resolves; unmatched values stay as-is (dangling
	// references are tolerated historical data).
	slots := model.SingularRoles(model.WeekSession)
	for _, r := range slots {
		if id, ok := legacyNameToID(roster, sheet.Get(r)); ok {
			sheet.Set(r, id)
			changed = true
		}
	}
	for _, rewrite := range []*[]string{&sheet.Affirmative, &sheet.Negative, &sheet.OnLeave} {
		for i, v := range *rewrite {
			if id, ok := legacyNameToID(roster, v); ok {
				(*rewrite)[i] = id
				changed = true
			}
		}
	}

	return changed
}

// legacyNameToID maps a raw member name to its ID. Values that are already
// IDs or do not match any roster name are left alone.
func legacyNameToID(roster []model.Member, value string) (string, bool) {
	if value == "" || model.FindMemberByID(roster, value) != nil {
		return "", false
	}
	for _, m := range roster {
		if strings.EqualFold(m.Name, value) {
			return m.ID, true
		}
	}
	return "", false
}
