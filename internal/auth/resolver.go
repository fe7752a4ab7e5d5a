package auth

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ramcivil/monitoring-service/internal/model"
	"github.com/ramcivil/monitoring-service/internal/repository"
)

// Resolver looks up the caller's role from the profiles collection on
// every request; there is no long-lived role cache. Any store failure
// resolves to guest, never to admin.
type Resolver struct {
	store repository.Store
	log   zerolog.Logger
}

func NewResolver(store repository.Store, log zerolog.Logger) *Resolver {
	return &Resolver{store: store, log: log}
}

func (r *Resolver) Resolve(ctx context.Context, userID string) model.Role {
	profiles, ok := r.store.Collection(repository.CollectionProfiles)
	if !ok {
		return model.RoleGuest
	}

	docs, err := profiles.FindByKey(ctx, userID)
	if err != nil {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("role lookup failed, treating as guest")
		return model.RoleGuest
	}
	if len(docs) == 0 {
		return model.RoleGuest
	}
	return repository.DecodeProfile(docs[0]).Role
}
