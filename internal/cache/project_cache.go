package cache

import (
	"context"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/google/uuid"
)

const projectEntity = "project"

// Relations used for secondary project indices.
const (
	RelationUser = "user"
	RelationTech = "tech"
)

// ProjectCache is the read cache for the project domain.
type ProjectCache struct {
	store Store
	ttl   TTLPolicy
}

func NewProjectCache(store Store, ttl TTLPolicy) *ProjectCache {
	return &ProjectCache{store: store, ttl: ttl}
}

func (c *ProjectCache) GetProject(ctx context.Context, id uuid.UUID) (*model.Project, bool) {
	p, ok := readJSON[*model.Project](ctx, c.store, ItemKey(projectEntity, id.String()))
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

func (c *ProjectCache) SetProject(ctx context.Context, p *model.Project) {
	writeJSON(ctx, c.store, ItemKey(projectEntity, p.ID.String()), p, c.ttl.Item)
}

func (c *ProjectCache) GetList(ctx context.Context, page, pageSize int, filters map[string]string) ([]model.Project, bool) {
	return readJSON[[]model.Project](ctx, c.store, ListKey(projectEntity, page, pageSize, filters))
}

func (c *ProjectCache) SetList(ctx context.Context, page, pageSize int, filters map[string]string, projects []model.Project) {
	writeJSON(ctx, c.store, ListKey(projectEntity, page, pageSize, filters), projects, c.ttl.List)
}

func (c *ProjectCache) GetCount(ctx context.Context, filters map[string]string) (int64, bool) {
	return readCount(ctx, c.store, CountKey(projectEntity, filters))
}

func (c *ProjectCache) SetCount(ctx context.Context, filters map[string]string, n int64) {
	writeCount(ctx, c.store, CountKey(projectEntity, filters), n, c.ttl.Count)
}

// GetRelationList reads a secondary index list, e.g. the projects of one
// tech or one contributor.
func (c *ProjectCache) GetRelationList(ctx context.Context, relation string, relatedID uuid.UUID, page, pageSize int, filters map[string]string) ([]model.Project, bool) {
	return readJSON[[]model.Project](ctx, c.store, RelationListKey(projectEntity, relation, relatedID.String(), page, pageSize, filters))
}

func (c *ProjectCache) SetRelationList(ctx context.Context, relation string, relatedID uuid.UUID, page, pageSize int, filters map[string]string, projects []model.Project) {
	writeJSON(ctx, c.store, RelationListKey(projectEntity, relation, relatedID.String(), page, pageSize, filters), projects, c.ttl.List)
}

// InvalidateProject drops the single-item key.
func (c *ProjectCache) InvalidateProject(ctx context.Context, id uuid.UUID) {
	del(ctx, c.store, ItemKey(projectEntity, id.String()))
}

// InvalidateAll sweeps every project key: items, lists, counts and
// secondary indices.
func (c *ProjectCache) InvalidateAll(ctx context.Context) {
	sweep(ctx, c.store, EntityPattern(projectEntity))
}

// InvalidateRelation drops the secondary index of one related entity, e.g.
// a tech's "projects containing this tech" lists after an attach/detach.
func (c *ProjectCache) InvalidateRelation(ctx context.Context, relation string, relatedID uuid.UUID) {
	sweep(ctx, c.store, RelationPattern(projectEntity, relation, relatedID.String()))
}
