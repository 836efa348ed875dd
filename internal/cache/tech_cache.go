package cache

import (
	"context"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/google/uuid"
)

const techEntity = "tech"

// TechCache is the read cache for the tech domain, including the
// duplicate-name fast path.
type TechCache struct {
	store Store
	ttl   TTLPolicy
}

func NewTechCache(store Store, ttl TTLPolicy) *TechCache {
	return &TechCache{store: store, ttl: ttl}
}

func (c *TechCache) GetTech(ctx context.Context, id uuid.UUID) (*model.Tech, bool) {
	t, ok := readJSON[*model.Tech](ctx, c.store, ItemKey(techEntity, id.String()))
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

func (c *TechCache) SetTech(ctx context.Context, t *model.Tech) {
	writeJSON(ctx, c.store, ItemKey(techEntity, t.ID.String()), t, c.ttl.Item)
}

func (c *TechCache) GetList(ctx context.Context, page, pageSize int, filters map[string]string) ([]model.Tech, bool) {
	return readJSON[[]model.Tech](ctx, c.store, ListKey(techEntity, page, pageSize, filters))
}

func (c *TechCache) SetList(ctx context.Context, page, pageSize int, filters map[string]string, techs []model.Tech) {
	writeJSON(ctx, c.store, ListKey(techEntity, page, pageSize, filters), techs, c.ttl.List)
}

func (c *TechCache) GetCount(ctx context.Context, filters map[string]string) (int64, bool) {
	return readCount(ctx, c.store, CountKey(techEntity, filters))
}

func (c *TechCache) SetCount(ctx context.Context, filters map[string]string, n int64) {
	writeCount(ctx, c.store, CountKey(techEntity, filters), n, c.ttl.Count)
}

// GetNameLookup returns the id of the tech holding a name, if the
// duplicate-check entry is warm.
func (c *TechCache) GetNameLookup(ctx context.Context, name string) (uuid.UUID, bool) {
	id, ok := readJSON[uuid.UUID](ctx, c.store, NameKey(techEntity, name))
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *TechCache) SetNameLookup(ctx context.Context, name string, id uuid.UUID) {
	writeJSON(ctx, c.store, NameKey(techEntity, name), id, c.ttl.Name)
}

func (c *TechCache) InvalidateTech(ctx context.Context, id uuid.UUID) {
	del(ctx, c.store, ItemKey(techEntity, id.String()))
}

func (c *TechCache) InvalidateAll(ctx context.Context) {
	sweep(ctx, c.store, EntityPattern(techEntity))
}
