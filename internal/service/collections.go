package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ramcivil/monitoring-service/internal/auth"
	"github.com/ramcivil/monitoring-service/internal/model"
	"github.com/ramcivil/monitoring-service/internal/repository"
	"github.com/ramcivil/monitoring-service/internal/stats"
)

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

// CollectionService fronts the CRUD surface over whichever store backend
// was selected at startup. It owns the cross-entity rules the stores do
// not enforce: cascade deletion of a work order's notifications, server
// stamping of created_at and owner, and role-change publication.
type CollectionService struct {
	store repository.Store
	feed  *auth.RoleFeed
	log   zerolog.Logger
}

func NewCollectionService(store repository.Store, feed *auth.RoleFeed, log zerolog.Logger) *CollectionService {
	return &CollectionService{store: store, feed: feed, log: log}
}

func (s *CollectionService) collection(name string) (repository.Collection, error) {
	col, ok := s.store.Collection(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", ErrNotFound, name)
	}
	return col, nil
}

func (s *CollectionService) List(ctx context.Context, name string, limit int) ([]map[string]any, error) {
	col, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	docs, err := col.Find(ctx, limit)
	if err != nil {
		return nil, s.storeErr(err, "list "+name)
	}
	return docs, nil
}

// GetResult is either a single document or, when the id matched a named
// foreign key instead of a primary key, the list of children.
type GetResult struct {
	Doc  map[string]any
	Docs []map[string]any
}

// Get fetches by primary key when the id has primary-key shape. An id of
// the wrong shape falls back to the collection's named foreign key, so
// work orders can be fetched by contract id and notifications by work
// order id. Wrong shape with no foreign key is an invalid id.
func (s *CollectionService) Get(ctx context.Context, name, id string) (*GetResult, error) {
	col, err := s.collection(name)
	if err != nil {
		return nil, err
	}

	if col.ValidID(id) {
		doc, err := col.FindByID(ctx, id)
		switch {
		case err == nil:
			return &GetResult{Doc: doc}, nil
		case err == repository.ErrNotFound:
			return nil, ErrNotFound
		default:
			return nil, s.storeErr(err, "get "+name)
		}
	}

	if _, ok := repository.ForeignKey(name); ok {
		docs, err := col.FindByKey(ctx, id)
		if err != nil {
			return nil, s.storeErr(err, "get "+name+" by key")
		}
		return &GetResult{Docs: docs}, nil
	}
	return nil, ErrInvalidID
}

func (s *CollectionService) Create(ctx context.Context, name string, payload map[string]any, principal auth.Principal) (string, error) {
	col, err := s.collection(name)
	if err != nil {
		return "", err
	}
	if payload == nil {
		return "", fmt.Errorf("%w: empty payload", ErrInvalidInput)
	}

	if _, ok := payload["created_at"]; !ok {
		payload["created_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	payload["owner"] = principal.UserID

	id, err := col.Create(ctx, payload)
	if err != nil {
		return "", s.storeErr(err, "create "+name)
	}
	return id, nil
}

func (s *CollectionService) Update(ctx context.Context, name, id string, patch map[string]any) (int64, error) {
	col, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	if patch == nil {
		return 0, fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}

	modified, err := col.Update(ctx, id, patch)
	switch err {
	case nil:
	case repository.ErrInvalidID:
		return 0, ErrInvalidID
	case repository.ErrNotFound:
		return 0, ErrNotFound
	default:
		return 0, s.storeErr(err, "update "+name)
	}

	if name == repository.CollectionProfiles {
		if _, changedRole := patch["role"]; changedRole {
			s.publishRoleChange(ctx, col, id)
		}
	}
	return modified, nil
}

// Delete removes one record. Deleting a work order removes its dependent
// notifications first; the document backend has no foreign keys, so
// orphan prevention lives here, and both backends behave identically.
func (s *CollectionService) Delete(ctx context.Context, name, id string) (int64, error) {
	col, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	if !col.ValidID(id) {
		return 0, ErrInvalidID
	}

	if name == repository.CollectionWorkOrders {
		if err := s.deleteNotificationsOf(ctx, id); err != nil {
			return 0, err
		}
	}

	deleted, err := col.Delete(ctx, id)
	switch err {
	case nil:
		return deleted, nil
	case repository.ErrInvalidID:
		return 0, ErrInvalidID
	case repository.ErrNotFound:
		return 0, ErrNotFound
	default:
		return 0, s.storeErr(err, "delete "+name)
	}
}

func (s *CollectionService) deleteNotificationsOf(ctx context.Context, workOrderID string) error {
	notifications, err := s.collection(repository.CollectionNotifications)
	if err != nil {
		return err
	}
	children, err := notifications.FindByKey(ctx, workOrderID)
	if err != nil {
		return s.storeErr(err, "cascade lookup")
	}
	for _, child := range children {
		id, _ := child["id"].(string)
		if id == "" {
			continue
		}
		if _, err := notifications.Delete(ctx, id); err != nil && err != repository.ErrNotFound {
			return s.storeErr(err, "cascade delete")
		}
	}
	return nil
}

func (s *CollectionService) publishRoleChange(ctx context.Context, profiles repository.Collection, id string) {
	if s.feed == nil {
		return
	}
	doc, err := profiles.FindByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("profile_id", id).Msg("role change published without profile lookup")
		return
	}
	profile := repository.DecodeProfile(doc)
	s.feed.Publish(auth.RoleEvent{UserID: profile.UserID, Role: profile.Role})
}

// Counts backs the status endpoint: one document count per collection.
func (s *CollectionService) Counts(ctx context.Context) (map[string]int64, error) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return nil, s.storeErr(err, "counts")
	}
	return counts, nil
}

// Dashboard assembles the stat cards from full collection scans capped
// at the list maximum, the same window the dashboard always displayed.
func (s *CollectionService) Dashboard(ctx context.Context) (*stats.Dashboard, error) {
	contracts, err := s.List(ctx, repository.CollectionContracts, maxListLimit)
	if err != nil {
		return nil, err
	}
	workOrders, err := s.List(ctx, repository.CollectionWorkOrders, maxListLimit)
	if err != nil {
		return nil, err
	}
	notifications, err := s.List(ctx, repository.CollectionNotifications, maxListLimit)
	if err != nil {
		return nil, err
	}

	typedContracts := make([]model.Contract, 0, len(contracts))
	for _, doc := range contracts {
		typedContracts = append(typedContracts, repository.DecodeContract(doc))
	}
	typedWorkOrders := make([]model.WorkOrder, 0, len(workOrders))
	for _, doc := range workOrders {
		typedWorkOrders = append(typedWorkOrders, repository.DecodeWorkOrder(doc))
	}
	typedNotifications := make([]model.Notification, 0, len(notifications))
	for _, doc := range notifications {
		typedNotifications = append(typedNotifications, repository.DecodeNotification(doc))
	}

	dashboard := stats.BuildDashboard(typedContracts, typedWorkOrders, typedNotifications)
	return &dashboard, nil
}

func (s *CollectionService) storeErr(err error, op string) error {
	s.log.Error().Err(err).Str("op", op).Msg("store operation failed")
	return fmt.Errorf("%w: %s", ErrStoreUnavailable, op)
}
