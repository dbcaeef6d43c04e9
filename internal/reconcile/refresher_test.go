package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmchainx/trace-engine/internal/model"
	"github.com/farmchainx/trace-engine/internal/remote/dto"
	"github.com/farmchainx/trace-engine/internal/store"
)

type fakeFetcher struct {
	rows     []dto.InventoryRow
	users    []dto.UserRow
	rowsErr  error
	usersErr error
}

func (f *fakeFetcher) FetchInventory(context.Context) ([]dto.InventoryRow, error) {
	return f.rows, f.rowsErr
}

func (f *fakeFetcher) FetchUsers(context.Context) ([]dto.UserRow, error) {
	return f.users, f.usersErr
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(nil, nil)
	require.NoError(t, st.Load(context.Background()))
	return st
}

func TestRefresher_Refresh_ReplacesCollection(t *testing.T) {
	st := newTestStore(t)
	st.RecordCropUpload(model.Crop{ID: "7", InventoryID: "7", QRCode: "11112222", Price: model.Float(55)})

	fetcher := &fakeFetcher{rows: []dto.InventoryRow{sampleRow()}}
	r := NewRefresher(st, fetcher, testMapper(), nil)

	require.NoError(t, r.Refresh(context.Background()))

	crops := st.Crops()
	require.Len(t, crops, 1)
	assert.Equal(t, "Basmati Rice", crops[0].Name)
	// local-only fields survive the replacement
	assert.Equal(t, "11112222", crops[0].QRCode)
	assert.Equal(t, 55.0, *crops[0].Price)
}

func TestRefresher_Refresh_FetchFailureKeepsCrops(t *testing.T) {
	st := newTestStore(t)
	st.RecordCropUpload(model.Crop{ID: "7", Name: "Kept"})

	fetcher := &fakeFetcher{rowsErr: errors.New("backend down")}
	r := NewRefresher(st, fetcher, nil, nil)

	err := r.Refresh(context.Background())
	require.Error(t, err)

	crops := st.Crops()
	require.Len(t, crops, 1)
	assert.Equal(t, "Kept", crops[0].Name)

	notes := st.Snapshot().Notifications
	require.Len(t, notes, 1)
	assert.Equal(t, "error", notes[0].Type)
	assert.Equal(t, "Failed to load inventory data", notes[0].Message)
}

func TestRefresher_RefreshUsers_NormalizesRoles(t *testing.T) {
	st := newTestStore(t)
	fetcher := &fakeFetcher{users: []dto.UserRow{
		{ID: 1, Name: "A", Email: "a@x.com", Role: "Distributor", IsActive: true},
		{ID: 2, Name: "B", Email: "b@x.com", Role: "farmer"},
	}}
	r := NewRefresher(st, fetcher, nil, nil)

	require.NoError(t, r.RefreshUsers(context.Background()))

	users := st.Users()
	require.Len(t, users, 2)
	assert.Equal(t, model.RoleDistributor, users[0].Role)
	assert.Equal(t, "1", users[0].ID)
	assert.True(t, users[0].IsActive)
	assert.Equal(t, model.RoleFarmer, users[1].Role)
}

func TestRefresher_RefreshUsers_FetchFailureKeepsLocal(t *testing.T) {
	st := newTestStore(t)
	before := len(st.Users())

	fetcher := &fakeFetcher{usersErr: errors.New("backend down")}
	r := NewRefresher(st, fetcher, nil, nil)

	require.Error(t, r.RefreshUsers(context.Background()))
	assert.Len(t, st.Users(), before)
}
