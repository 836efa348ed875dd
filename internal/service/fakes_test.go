package service

import (
	"context"

	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. Counters record database round-trips so the
// cache tests can assert a warm read skips the store.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User

	findByEmailErr error
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if r.findByEmailErr != nil {
		return nil, r.findByEmailErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, _ string, _, _ int) ([]*model.User, int64, error) {
	var out []*model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role model.Role) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ReplaceSkills(_ context.Context, _ uuid.UUID, _ []uuid.UUID) error {
	return nil
}

type fakeTechRepo struct {
	techs map[uuid.UUID]*model.Tech

	findByIDCalls   int
	findByNameCalls int
	findAllCalls    int
}

func newFakeTechRepo(techs ...*model.Tech) *fakeTechRepo {
	r := &fakeTechRepo{techs: make(map[uuid.UUID]*model.Tech)}
	for _, tech := range techs {
		r.techs[tech.ID] = tech
	}
	return r
}

func (r *fakeTechRepo) Create(_ context.Context, tech *model.Tech) error {
	for _, existing := range r.techs {
		if existing.Name == tech.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if tech.ID == uuid.Nil {
		tech.ID = uuid.New()
	}
	r.techs[tech.ID] = tech
	return nil
}

func (r *fakeTechRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Tech, error) {
	r.findByIDCalls++
	t, ok := r.techs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTechRepo) FindByName(_ context.Context, name string) (*model.Tech, error) {
	r.findByNameCalls++
	for _, t := range r.techs {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTechRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Tech, error) {
	var out []model.Tech
	for _, id := range ids {
		if t, ok := r.techs[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTechRepo) FindAll(_ context.Context, _ string, _, _ int) ([]model.Tech, int64, error) {
	r.findAllCalls++
	var out []model.Tech
	for _, t := range r.techs {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTechRepo) Update(_ context.Context, tech *model.Tech) error {
	r.techs[tech.ID] = tech
	return nil
}

func (r *fakeTechRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.techs, id)
	return nil
}

type fakeSkillRepo struct {
	skills map[uuid.UUID]*model.Skill
}

func newFakeSkillRepo(skills ...*model.Skill) *fakeSkillRepo {
	r := &fakeSkillRepo{skills: make(map[uuid.UUID]*model.Skill)}
	for _, s := range skills {
		r.skills[s.ID] = s
	}
	return r
}

func (r *fakeSkillRepo) Create(_ context.Context, skill *model.Skill) error {
	for _, existing := range r.skills {
		if existing.Name == skill.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if skill.ID == uuid.Nil {
		skill.ID = uuid.New()
	}
	r.skills[skill.ID] = skill
	return nil
}

func (r *fakeSkillRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Skill, error) {
	s, ok := r.skills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSkillRepo) FindByName(_ context.Context, name string) (*model.Skill, error) {
	for _, s := range r.skills {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSkillRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Skill, error) {
	var out []model.Skill
	for _, id := range ids {
		if s, ok := r.skills[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSkillRepo) FindAll(_ context.Context, _ string, _, _ int) ([]model.Skill, int64, error) {
	var out []model.Skill
	for _, s := range r.skills {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSkillRepo) Update(_ context.Context, skill *model.Skill) error {
	r.skills[skill.ID] = skill
	return nil
}

func (r *fakeSkillRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.skills, id)
	return nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*model.Project

	findByIDCalls int
	findAllCalls  int
}

func newFakeProjectRepo(projects ...*model.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{projects: make(map[uuid.UUID]*model.Project)}
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r
}

func (r *fakeProjectRepo) Create(_ context.Context, project *model.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	r.findByIDCalls++
	p, ok := r.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) FindAll(_ context.Context, _ repository.ProjectFilter, _, _ int) ([]model.Project, int64, error) {
	r.findAllCalls++
	var out []model.Project
	for _, p := range r.projects {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *model.Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) ReplaceTechs(_ context.Context, projectID uuid.UUID, techIDs []uuid.UUID) error {
	p, ok := r.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Techs = nil
	for _, id := range techIDs {
		p.Techs = append(p.Techs, model.Tech{ID: id})
	}
	return nil
}

func (r *fakeProjectRepo) AddTechs(_ context.Context, projectID uuid.UUID, techIDs []uuid.UUID) error {
	p, ok := r.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, id := range techIDs {
		if !hasTech(p.Techs, id) {
			p.Techs = append(p.Techs, model.Tech{ID: id})
		}
	}
	return nil
}

func (r *fakeProjectRepo) RemoveTech(_ context.Context, projectID, techID uuid.UUID) error {
	p, ok := r.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	out := p.Techs[:0]
	for _, t := range p.Techs {
		if t.ID != techID {
			out = append(out, t)
		}
	}
	p.Techs = out
	return nil
}

func (r *fakeProjectRepo) ReplaceContributors(_ context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	p, ok := r.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Contributors = nil
	for _, id := range userIDs {
		p.Contributors = append(p.Contributors, model.User{ID: id})
	}
	return nil
}

func (r *fakeProjectRepo) AddContributors(_ context.Context, projectID uuid.UUID, userIDs []uuid.UUID) error {
	p, ok := r.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, id := range userIDs {
		if !hasContributor(p.Contributors, id) {
			p.Contributors = append(p.Contributors, model.User{ID: id})
		}
	}
	return nil
}

func (r *fakeProjectRepo) RemoveContributor(_ context.Context, projectID, userID uuid.UUID) error {
	p, ok := r.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	out := p.Contributors[:0]
	for _, u := range p.Contributors {
		if u.ID != userID {
			out = append(out, u)
		}
	}
	p.Contributors = out
	return nil
}

func hasTech(techs []model.Tech, id uuid.UUID) bool {
	for _, t := range techs {
		if t.ID == id {
			return true
		}
	}
	return false
}

func hasContributor(users []model.User, id uuid.UUID) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// noopSearch satisfies SearchService without an engine behind it.
type noopSearch struct{}

func (noopSearch) IndexBlog(*model.Blog)                {}
func (noopSearch) DeleteBlog(string)                    {}
func (noopSearch) IndexProject(*model.Project)          {}
func (noopSearch) DeleteProject(string)                 {}
func (noopSearch) GenerateSearchToken() (string, error) { return "", nil }
