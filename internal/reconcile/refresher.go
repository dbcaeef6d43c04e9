package reconcile

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/farmchainx/trace-engine/internal/model"
	"github.com/farmchainx/trace-engine/internal/remote/dto"
	"github.com/farmchainx/trace-engine/internal/store"
)

// Fetcher is the slice of the backend client the refresher needs.
type Fetcher interface {
	FetchInventory(ctx context.Context) ([]dto.InventoryRow, error)
	FetchUsers(ctx context.Context) ([]dto.UserRow, error)
}

// Refresher pulls authoritative data from the backend and folds it into the
// store through the mapper. There is no cancellation of in-flight fetches;
// a stale response still applies when it resolves after a newer request —
// the mapper's precedence rules are the only protection for local edits.
type Refresher struct {
	store  *store.Store
	client Fetcher
	mapper *Mapper
	logger *zap.Logger
}

func NewRefresher(st *store.Store, client Fetcher, mapper *Mapper, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mapper == nil {
		mapper = NewMapper()
	}
	return &Refresher{store: st, client: client, mapper: mapper, logger: logger}
}

// Refresh fetches the inventory and replaces the crop collection with the
// reconciled result. On fetch failure the previous collection stays
// untouched; the error is logged and surfaced as a notification.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.store.SetLoading(true)
	defer r.store.SetLoading(false)

	rows, err := r.client.FetchInventory(ctx)
	if err != nil {
		r.logger.Error("failed to load inventory", zap.Error(err))
		r.store.PushNotification(store.Notification{
			Type:        "error",
			Message:     "Failed to load inventory data",
			Description: err.Error(),
		})
		return err
	}

	mapped := r.mapper.MapAll(rows, r.store.Crops())
	r.store.ReplaceCropCollection(mapped)
	r.logger.Debug("reconciled inventory", zap.Int("crops", len(mapped)))
	return nil
}

// RefreshUsers fetches backend accounts, normalizing display-name roles
// back to role keys. On failure the local accounts are kept as-is.
func (r *Refresher) RefreshUsers(ctx context.Context) error {
	rows, err := r.client.FetchUsers(ctx)
	if err != nil {
		r.logger.Debug("keeping local users, fetch failed", zap.Error(err))
		return err
	}

	users := make([]model.User, len(rows))
	for i, row := range rows {
		users[i] = model.User{
			ID:       strconv.FormatInt(row.ID, 10),
			Name:     row.Name,
			Email:    row.Email,
			Role:     model.ParseRole(row.Role),
			IsActive: row.IsActive,
		}
	}
	r.store.SetUsers(users)
	return nil
}
