package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/google/uuid"
)

func testTTL() TTLPolicy {
	return DefaultTTLPolicy()
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "short", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, ok, _ := store.Get(ctx, "short"); ok {
		t.Fatal("expired entry should miss")
	}
}

func TestProjectCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewProjectCache(NewMemoryStore(), testTTL())

	id := uuid.New()
	project := &model.Project{ID: id, Title: "devhub"}

	if _, ok := c.GetProject(ctx, id); ok {
		t.Fatal("cold cache should miss")
	}

	c.SetProject(ctx, project)

	got, ok := c.GetProject(ctx, id)
	if !ok {
		t.Fatal("warm cache should hit")
	}
	if got.ID != id || got.Title != "devhub" {
		t.Fatalf("round-trip mangled the project: %+v", got)
	}
}

func TestProjectCacheInvalidateAll(t *testing.T) {
	ctx := context.Background()
	c := NewProjectCache(NewMemoryStore(), testTTL())

	id := uuid.New()
	techID := uuid.New()
	filters := map[string]string{"featured": "true"}

	c.SetProject(ctx, &model.Project{ID: id})
	c.SetList(ctx, 1, 10, filters, []model.Project{{ID: id}})
	c.SetCount(ctx, filters, 1)
	c.SetRelationList(ctx, RelationTech, techID, 1, 10, nil, []model.Project{{ID: id}})

	c.InvalidateAll(ctx)

	if _, ok := c.GetProject(ctx, id); ok {
		t.Error("item key should be swept")
	}
	if _, ok := c.GetList(ctx, 1, 10, filters); ok {
		t.Error("list key should be swept")
	}
	if _, ok := c.GetCount(ctx, filters); ok {
		t.Error("count key should be swept")
	}
	if _, ok := c.GetRelationList(ctx, RelationTech, techID, 1, 10, nil); ok {
		t.Error("secondary index should be swept")
	}
}

func TestProjectCacheInvalidateRelationIsScoped(t *testing.T) {
	ctx := context.Background()
	c := NewProjectCache(NewMemoryStore(), testTTL())

	techA := uuid.New()
	techB := uuid.New()

	c.SetRelationList(ctx, RelationTech, techA, 1, 10, nil, []model.Project{})
	c.SetRelationList(ctx, RelationTech, techB, 1, 10, nil, []model.Project{})

	c.InvalidateRelation(ctx, RelationTech, techA)

	if _, ok := c.GetRelationList(ctx, RelationTech, techA, 1, 10, nil); ok {
		t.Error("invalidated relation should miss")
	}
	if _, ok := c.GetRelationList(ctx, RelationTech, techB, 1, 10, nil); !ok {
		t.Error("unrelated relation should survive")
	}
}

func TestTechCacheNameLookup(t *testing.T) {
	ctx := context.Background()
	c := NewTechCache(NewMemoryStore(), testTTL())

	id := uuid.New()

	if _, ok := c.GetNameLookup(ctx, "Go"); ok {
		t.Fatal("cold name lookup should miss")
	}

	c.SetNameLookup(ctx, "Go", id)

	got, ok := c.GetNameLookup(ctx, "  go ")
	if !ok {
		t.Fatal("name lookup should normalize case and whitespace")
	}
	if got != id {
		t.Fatalf("name lookup = %s, want %s", got, id)
	}
}

func TestCountRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewTechCache(NewMemoryStore(), testTTL())

	if _, ok := c.GetCount(ctx, nil); ok {
		t.Fatal("cold count should miss")
	}

	c.SetCount(ctx, nil, 42)

	n, ok := c.GetCount(ctx, nil)
	if !ok || n != 42 {
		t.Fatalf("count = %d (hit=%v), want 42", n, ok)
	}
}
