package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/internal/config"
	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

// AppContext holds the application dependencies shared across all commands.
type AppContext struct {
	Cfg    *config.Config
	Store  store.Store
	Logger *zap.Logger
	Ctx    context.Context
}

// resolveBatch returns the batch addressed by id, or the active batch when
// id is empty.
func (app *AppContext) resolveBatch(id string) (*model.Batch, error) {
	batches, err := store.LoadBatches(app.Ctx, app.Store)
	if err != nil {
		return nil, err
	}
	if id == "" {
		batch := services.ActiveBatch(batches)
		if batch == nil {
			return nil, fmt.Errorf("no batches exist yet, run createBatch first")
		}
		return batch, nil
	}
	batch := services.FindBatch(batches, id)
	if batch == nil {
		return nil, fmt.Errorf("batch %q not found", id)
	}
	return batch, nil
}

// resolveMemberByID looks up a roster member by their stable id.
func (app *AppContext) resolveMemberByID(id string) (*model.Member, error) {
	members, err := store.LoadMembers(app.Ctx, app.Store)
	if err != nil {
		return nil, err
	}
	return model.FindMemberByID(members, id), nil
}

// resolveMember maps a display name to a roster member.
func (app *AppContext) resolveMember(name string) (*model.Member, error) {
	members, err := store.LoadMembers(app.Ctx, app.Store)
	if err != nil {
		return nil, err
	}
	m := services.FindMemberByName(members, name)
	if m == nil {
		return nil, fmt.Errorf("member %q not found", name)
	}
	return m, nil
}
