package service

import (
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// SearchService maintains the Meilisearch indexes for blogs and projects.
// Index writes are best-effort: a failure is logged and never fails the
// owning mutation. Queries run client-side against Meilisearch with a
// tenant token scoped to the search action.
type SearchService interface {
	IndexBlog(blog *model.Blog)
	DeleteBlog(id string)
	IndexProject(project *model.Project)
	DeleteProject(id string)
	GenerateSearchToken() (string, error)
}

type searchService struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
	sanitizer     *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if client != nil {
		s.initIndexes()
		s.initSigningKey()
	}
	return s
}

func (s *searchService) initIndexes() {
	blogFilterable := []any{"topic", "featured", "author_id"}
	if _, err := s.client.Index("blogs").UpdateFilterableAttributes(&blogFilterable); err != nil {
		log.Printf("failed to update blogs filterable attributes: %v", err)
	}
	blogSortable := []string{"created_at"}
	if _, err := s.client.Index("blogs").UpdateSortableAttributes(&blogSortable); err != nil {
		log.Printf("failed to update blogs sortable attributes: %v", err)
	}

	projectFilterable := []any{"featured", "owner_id", "tech_ids"}
	if _, err := s.client.Index("projects").UpdateFilterableAttributes(&projectFilterable); err != nil {
		log.Printf("failed to update projects filterable attributes: %v", err)
	}
	projectSortable := []string{"created_at"}
	if _, err := s.client.Index("projects").UpdateSortableAttributes(&projectSortable); err != nil {
		log.Printf("failed to update projects sortable attributes: %v", err)
	}
}

func (s *searchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{Limit: 20})
	if err != nil {
		log.Printf("failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "SearchTokenSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			return
		}
	}

	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign search tenant tokens",
		Name:        "SearchTokenSigner",
		Actions:     []string{"search"},
		Indexes:     []string{"blogs", "projects"},
		ExpiresAt:   time.Now().AddDate(100, 0, 0),
	})
	if err != nil {
		log.Printf("failed to create meilisearch signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
}

type blogDoc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Topic     string `json:"topic"`
	Featured  bool   `json:"featured"`
	AuthorID  string `json:"author_id"`
	CreatedAt int64  `json:"created_at"`
}

type projectDoc struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Featured    bool     `json:"featured"`
	OwnerID     string   `json:"owner_id"`
	TechIDs     []string `json:"tech_ids"`
	CreatedAt   int64    `json:"created_at"`
}

func (s *searchService) IndexBlog(blog *model.Blog) {
	if s.client == nil {
		return
	}

	doc := blogDoc{
		ID:        blog.ID.String(),
		Title:     blog.Title,
		Body:      s.cleanForIndex(blog.Body),
		Topic:     blog.Topic,
		Featured:  blog.Featured,
		AuthorID:  blog.AuthorID.String(),
		CreatedAt: blog.CreatedAt.Unix(),
	}

	if _, err := s.client.Index("blogs").AddDocuments([]blogDoc{doc}, strPtr("id")); err != nil {
		log.Printf("failed to index blog %s: %v", blog.ID, err)
	}
}

func (s *searchService) DeleteBlog(id string) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index("blogs").DeleteDocument(id); err != nil {
		log.Printf("failed to delete blog %s from index: %v", id, err)
	}
}

func (s *searchService) IndexProject(project *model.Project) {
	if s.client == nil {
		return
	}

	techIDs := make([]string, 0, len(project.Techs))
	for _, t := range project.Techs {
		techIDs = append(techIDs, t.ID.String())
	}

	doc := projectDoc{
		ID:          project.ID.String(),
		Title:       project.Title,
		Description: s.cleanForIndex(project.Description),
		Featured:    project.Featured,
		OwnerID:     project.OwnerID.String(),
		TechIDs:     techIDs,
		CreatedAt:   project.CreatedAt.Unix(),
	}

	if _, err := s.client.Index("projects").AddDocuments([]projectDoc{doc}, strPtr("id")); err != nil {
		log.Printf("failed to index project %s: %v", project.ID, err)
	}
}

func (s *searchService) DeleteProject(id string) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index("projects").DeleteDocument(id); err != nil {
		log.Printf("failed to delete project %s from index: %v", id, err)
	}
}

// GenerateSearchToken signs a tenant token clients use to query Meilisearch
// directly. All indexed content is public, so no per-user filter rules apply.
func (s *searchService) GenerateSearchToken() (string, error) {
	if s.client == nil || s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("search signing key not initialized")
	}

	searchRules := map[string]any{
		"blogs":    map[string]any{"filter": nil},
		"projects": map[string]any{"filter": nil},
	}

	return s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
}

func (s *searchService) cleanForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func strPtr(s string) *string {
	return &s
}
