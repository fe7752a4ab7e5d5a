package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramcivil/monitoring-service/internal/config"
	"github.com/ramcivil/monitoring-service/internal/db"
	"github.com/ramcivil/monitoring-service/internal/repository"
)

func newRelationalStore(t *testing.T) *repository.RelationalStore {
	t.Helper()

	cfg := &config.Config{
		DB: config.DBConfig{
			DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
			Driver: config.DriverPostgres,
		},
	}
	database, err := db.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	return repository.NewRelationalStore(database)
}

func TestRelationalRoundTrip(t *testing.T) {
	store := newRelationalStore(t)
	contracts := collectionOf(t, store, repository.CollectionContracts)
	ctx := context.Background()

	id, err := contracts.Create(ctx, map[string]any{
		"owner":               "user-1",
		"nama_kontrak_payung": "Pemeliharaan Jalan",
		"nilai_kontrak":       1_000_000.0,
		"created_at":          "2025-01-02T03:04:05Z",
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "relational ids are UUIDs")

	row, err := contracts.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, row["id"])
	assert.Equal(t, "Pemeliharaan Jalan", row["nama_kontrak_payung"])
}

func TestRelationalDropsUnknownColumns(t *testing.T) {
	store := newRelationalStore(t)
	contracts := collectionOf(t, store, repository.CollectionContracts)
	ctx := context.Background()

	id, err := contracts.Create(ctx, map[string]any{
		"owner":               "user-1",
		"nama_kontrak_payung": "Kontrak",
		"not_a_column":        "ignored",
	})
	require.NoError(t, err)

	row, err := contracts.FindByID(ctx, id)
	require.NoError(t, err)
	_, present := row["not_a_column"]
	assert.False(t, present)
}

func TestRelationalInvalidID(t *testing.T) {
	store := newRelationalStore(t)
	contracts := collectionOf(t, store, repository.CollectionContracts)
	ctx := context.Background()

	assert.False(t, contracts.ValidID("68b1f0aa11223344556677ff"), "document ids are not relational ids")

	_, err := contracts.FindByID(ctx, "68b1f0aa11223344556677ff")
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestRelationalUpdateIdempotence(t *testing.T) {
	store := newRelationalStore(t)
	contracts := collectionOf(t, store, repository.CollectionContracts)
	ctx := context.Background()

	id, err := contracts.Create(ctx, map[string]any{
		"owner":               "user-1",
		"nama_kontrak_payung": "Kontrak",
		"nilai_kontrak":       500_000.0,
	})
	require.NoError(t, err)

	patch := map[string]any{"nilai_kontrak": 750_000.0}

	modified, err := contracts.Update(ctx, id, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)

	modified, err = contracts.Update(ctx, id, patch)
	require.NoError(t, err)
	assert.Equal(t, int64(0), modified)
}

func TestRelationalDelete(t *testing.T) {
	store := newRelationalStore(t)
	notifications := collectionOf(t, store, repository.CollectionNotifications)
	ctx := context.Background()

	id, err := notifications.Create(ctx, map[string]any{
		"spk_id":   uuid.NewString(),
		"no_notif": "N-1",
	})
	require.NoError(t, err)

	deleted, err := notifications.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = notifications.Delete(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRelationalOwnerScope(t *testing.T) {
	store := newRelationalStore(t)
	contracts := collectionOf(t, store, repository.CollectionContracts)
	ctx := context.Background()

	mineID, err := contracts.Create(ctx, map[string]any{
		"owner":               "user-1",
		"nama_kontrak_payung": "Milik Saya",
	})
	require.NoError(t, err)
	_, err = contracts.Create(ctx, map[string]any{
		"owner":               "user-2",
		"nama_kontrak_payung": "Milik Orang Lain",
	})
	require.NoError(t, err)

	scoped := repository.WithOwner(ctx, "user-1")

	rows, err := contracts.Find(scoped, 50)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mineID, rows[0]["id"])

	// Unscoped context sees everything.
	rows, err = contracts.Find(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestRelationalFindByKey(t *testing.T) {
	store := newRelationalStore(t)
	workOrders := collectionOf(t, store, repository.CollectionWorkOrders)
	ctx := context.Background()

	contractID := uuid.NewString()
	// Entered out of number order on purpose.
	for i, number := range []string{"SPK-2", "SPK-0", "SPK-1"} {
		_, err := workOrders.Create(ctx, map[string]any{
			"kontrak_payung_id": contractID,
			"no_spk":            number,
			"created_at":        fmt.Sprintf("2025-01-0%dT00:00:00Z", i+1),
		})
		require.NoError(t, err)
	}
	_, err := workOrders.Create(ctx, map[string]any{
		"kontrak_payung_id": uuid.NewString(),
		"no_spk":            "SPK-other",
	})
	require.NoError(t, err)

	rows, err := workOrders.FindByKey(ctx, contractID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "SPK-0", rows[0]["no_spk"])
	assert.Equal(t, "SPK-1", rows[1]["no_spk"])
	assert.Equal(t, "SPK-2", rows[2]["no_spk"])
}
