package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/internal/repository"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// requireActor loads the acting user and checks it against the role floor.
func requireActor(ctx context.Context, userRepo repository.UserRepository, actorID uuid.UUID, min model.Role) (*model.User, error) {
	actor, err := userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperror.ErrNotFound, actorID)
		}
		return nil, err
	}
	if !actor.Role.AtLeast(min) {
		return nil, fmt.Errorf("%w: %s access required", apperror.ErrForbidden, min)
	}
	return actor, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
