package cache

import (
	"context"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/google/uuid"
)

const skillEntity = "skill"

// SkillCache is the read cache for the skill domain.
type SkillCache struct {
	store Store
	ttl   TTLPolicy
}

func NewSkillCache(store Store, ttl TTLPolicy) *SkillCache {
	return &SkillCache{store: store, ttl: ttl}
}

func (c *SkillCache) GetSkill(ctx context.Context, id uuid.UUID) (*model.Skill, bool) {
	s, ok := readJSON[*model.Skill](ctx, c.store, ItemKey(skillEntity, id.String()))
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

func (c *SkillCache) SetSkill(ctx context.Context, s *model.Skill) {
	writeJSON(ctx, c.store, ItemKey(skillEntity, s.ID.String()), s, c.ttl.Item)
}

func (c *SkillCache) GetList(ctx context.Context, page, pageSize int, filters map[string]string) ([]model.Skill, bool) {
	return readJSON[[]model.Skill](ctx, c.store, ListKey(skillEntity, page, pageSize, filters))
}

func (c *SkillCache) SetList(ctx context.Context, page, pageSize int, filters map[string]string, skills []model.Skill) {
	writeJSON(ctx, c.store, ListKey(skillEntity, page, pageSize, filters), skills, c.ttl.List)
}

func (c *SkillCache) GetCount(ctx context.Context, filters map[string]string) (int64, bool) {
	return readCount(ctx, c.store, CountKey(skillEntity, filters))
}

func (c *SkillCache) SetCount(ctx context.Context, filters map[string]string, n int64) {
	writeCount(ctx, c.store, CountKey(skillEntity, filters), n, c.ttl.Count)
}

func (c *SkillCache) GetNameLookup(ctx context.Context, name string) (uuid.UUID, bool) {
	id, ok := readJSON[uuid.UUID](ctx, c.store, NameKey(skillEntity, name))
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *SkillCache) SetNameLookup(ctx context.Context, name string, id uuid.UUID) {
	writeJSON(ctx, c.store, NameKey(skillEntity, name), id, c.ttl.Name)
}

func (c *SkillCache) InvalidateSkill(ctx context.Context, id uuid.UUID) {
	del(ctx, c.store, ItemKey(skillEntity, id.String()))
}

func (c *SkillCache) InvalidateAll(ctx context.Context) {
	sweep(ctx, c.store, EntityPattern(skillEntity))
}
