package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
)

// Collection names follow the original dashboard's store layout.
const (
	CollectionContracts     = "kontrakPayung"
	CollectionWorkOrders    = "spk"
	CollectionNotifications = "notifikasi"
	CollectionProfiles      = "profiles"
)

// Collections lists every collection the status endpoint reports on.
var Collections = []string{
	CollectionContracts,
	CollectionNotifications,
	CollectionProfiles,
	CollectionWorkOrders,
}

// foreignKeys maps a collection to the named foreign key it can be
// queried by when the requested id is not primary-key shaped.
var foreignKeys = map[string]string{
	CollectionWorkOrders:    "kontrak_payung_id",
	CollectionNotifications: "spk_id",
	CollectionProfiles:      "user_id",
}

func ForeignKey(collection string) (string, bool) {
	fk, ok := foreignKeys[collection]
	return fk, ok
}

func knownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// Collection is the CRUD surface shared by both backends. Every
// identifier crossing this boundary is a string; documents are plain
// JSON-decoded maps with the primary key exposed under "id".
//
// FindByID and Update return ErrInvalidID before touching the store when
// the id is malformed, and ErrNotFound when no record matches. Update
// applies merge-patch semantics and reports how many fields actually
// changed state (0 for an identical re-apply). Delete reports the number
// of removed records and ErrNotFound when there were none.
type Collection interface {
	Find(ctx context.Context, limit int) ([]map[string]any, error)
	FindByID(ctx context.Context, id string) (map[string]any, error)
	FindByKey(ctx context.Context, value string) ([]map[string]any, error)
	Create(ctx context.Context, payload map[string]any) (string, error)
	Update(ctx context.Context, id string, patch map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	ValidID(id string) bool
}

// Store is the backend selected once at startup, never mixed per call.
type Store interface {
	Collection(name string) (Collection, bool)
	Counts(ctx context.Context) (map[string]int64, error)
}

type ownerKey struct{}

// WithOwner scopes subsequent relational reads to the given user. The
// relational backend enforces ownership itself (the row-level-security
// stand-in); the document backend leaves enforcement to the access gate.
func WithOwner(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, userID)
}

func ownerFrom(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey{}).(string)
	return owner
}
