package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramcivil/monitoring-service/internal/auth"
	"github.com/ramcivil/monitoring-service/internal/config"
	"github.com/ramcivil/monitoring-service/internal/db"
	"github.com/ramcivil/monitoring-service/internal/model"
	"github.com/ramcivil/monitoring-service/internal/repository"
	"github.com/ramcivil/monitoring-service/internal/service"
)

func newService(t *testing.T) (*service.CollectionService, *auth.RoleFeed) {
	t.Helper()

	cfg := &config.Config{
		DB: config.DBConfig{
			DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
			Driver: config.DriverDocument,
		},
	}
	database, err := db.New(cfg, zerolog.Nop())
	require.NoError(t, err)

	feed := auth.NewRoleFeed()
	store := repository.NewDocumentStore(database)
	return service.NewCollectionService(store, feed, zerolog.Nop()), feed
}

var admin = auth.Principal{UserID: "admin-1", FullName: "Admin"}

func TestCreateStampsOwnerAndCreatedAt(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, repository.CollectionContracts, map[string]any{
		"nama_kontrak_payung": "Pemeliharaan Jalan",
	}, admin)
	require.NoError(t, err)

	got, err := svc.Get(ctx, repository.CollectionContracts, id)
	require.NoError(t, err)
	require.NotNil(t, got.Doc)
	assert.Equal(t, "admin-1", got.Doc["owner"])

	createdAt, _ := got.Doc["created_at"].(string)
	_, err = time.Parse(time.RFC3339, createdAt)
	assert.NoError(t, err, "created_at must be RFC3339")
}

func TestCreateKeepsClientCreatedAt(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, repository.CollectionContracts, map[string]any{
		"nama_kontrak_payung": "Kontrak Lama",
		"created_at":          "2024-06-01T00:00:00Z",
	}, admin)
	require.NoError(t, err)

	got, err := svc.Get(ctx, repository.CollectionContracts, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T00:00:00Z", got.Doc["created_at"])
}

func TestGetFallsBackToForeignKey(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	contractID, err := svc.Create(ctx, repository.CollectionContracts, map[string]any{
		"nama_kontrak_payung": "Induk",
	}, admin)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, repository.CollectionWorkOrders, map[string]any{
			"kontrak_payung_id": contractID,
			"no_spk":            fmt.Sprintf("SPK-%d", i),
		}, admin)
		require.NoError(t, err)
	}

	// The contract id is not a work-order id, so the lookup lands on
	// kontrak_payung_id and returns the children.
	got, err := svc.Get(ctx, repository.CollectionWorkOrders, contractID)
	require.NoError(t, err)
	assert.Nil(t, got.Doc)
	assert.Len(t, got.Docs, 2)
}

func TestGetInvalidIDWithoutForeignKey(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Get(context.Background(), repository.CollectionContracts, "bogus")
	assert.ErrorIs(t, err, service.ErrInvalidID)
}

func TestDeleteWorkOrderCascades(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	spkID, err := svc.Create(ctx, repository.CollectionWorkOrders, map[string]any{
		"no_spk": "SPK-001",
	}, admin)
	require.NoError(t, err)

	var notifIDs []string
	for i := 0; i < 2; i++ {
		id, err := svc.Create(ctx, repository.CollectionNotifications, map[string]any{
			"spk_id":   spkID,
			"no_notif": fmt.Sprintf("N-%d", i),
		}, admin)
		require.NoError(t, err)
		notifIDs = append(notifIDs, id)
	}

	deleted, err := svc.Delete(ctx, repository.CollectionWorkOrders, spkID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	for _, id := range notifIDs {
		_, err := svc.Get(ctx, repository.CollectionNotifications, id)
		assert.ErrorIs(t, err, service.ErrNotFound)
	}

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts[repository.CollectionWorkOrders])
	assert.Equal(t, int64(0), counts[repository.CollectionNotifications])
}

func TestUpdateUnknownAndMissing(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "noSuchCollection", "68b1f0aa11223344556677ff", map[string]any{"x": 1})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Update(ctx, repository.CollectionContracts, "68b1f0aa11223344556677ff", map[string]any{"x": 1})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Update(ctx, repository.CollectionContracts, "bad-id", map[string]any{"x": 1})
	assert.ErrorIs(t, err, service.ErrInvalidID)
}

func TestRoleChangePublishedToFeed(t *testing.T) {
	svc, feed := newService(t)
	ctx := context.Background()

	profileID, err := svc.Create(ctx, repository.CollectionProfiles, map[string]any{
		"user_id": "user-42",
		"role":    "guest",
	}, admin)
	require.NoError(t, err)

	subID, events := feed.Subscribe()
	defer feed.Unsubscribe(subID)

	_, err = svc.Update(ctx, repository.CollectionProfiles, profileID, map[string]any{"role": "admin"})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, "user-42", event.UserID)
		assert.Equal(t, model.RoleAdmin, event.Role)
	case <-time.After(time.Second):
		t.Fatal("no role event published")
	}
}

func TestDashboardFromStore(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	contractID, err := svc.Create(ctx, repository.CollectionContracts, map[string]any{
		"nama_kontrak_payung": "Induk",
		"nilai_kontrak":       2_000_000.0,
	}, admin)
	require.NoError(t, err)

	_, err = svc.Create(ctx, repository.CollectionWorkOrders, map[string]any{
		"kontrak_payung_id":                 contractID,
		"nilai_rekapitulasi_estimasi_biaya": 500_000.0,
		"realisasi_spk":                     250_000.0,
		"progress_percentage":               100.0,
	}, admin)
	require.NoError(t, err)

	dashboard, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.TotalKontrak)
	assert.Equal(t, 1, dashboard.TotalSPK)
	assert.Equal(t, 2_000_000.0, dashboard.TotalNilaiKontrak)
	assert.Equal(t, 250_000.0, dashboard.TotalRealisasiSPK)
	assert.Equal(t, 100, dashboard.AvgProgress)
	assert.Equal(t, 1, dashboard.CompletedSPK)
}
