// Package mock provides in-memory repository implementations for
// handler tests. Call counters let tests assert whether the cache or
// the repository served a read.
package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/garnizeh/skillsnap/pkg/errs"
	"github.com/garnizeh/skillsnap/pkg/models"
)

type Mocks struct {
	Users    *PortfolioUserRepo
	Projects *ProjectRepo
	Skills   *SkillRepo
	Accounts *AccountRepo
	Stats    *StatisticsRepo
}

func NewMocks() *Mocks {
	users := &PortfolioUserRepo{byID: map[uint]models.PortfolioUser{}}
	projects := &ProjectRepo{byID: map[uint]models.Project{}}
	skills := &SkillRepo{byID: map[uint]models.Skill{}}
	return &Mocks{
		Users:    users,
		Projects: projects,
		Skills:   skills,
		Accounts: &AccountRepo{byID: map[uint]models.Account{}},
		Stats:    &StatisticsRepo{projects: projects, skills: skills},
	}
}

type PortfolioUserRepo struct {
	mu        sync.Mutex
	byID      map[uint]models.PortfolioUser
	nextID    uint
	ListCalls int
}

func (m *PortfolioUserRepo) CreatePortfolioUser(ctx context.Context, u *models.PortfolioUser) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = m.nextID
	m.byID[u.ID] = *u
	return u.ID, nil
}

func (m *PortfolioUserRepo) GetPortfolioUserByID(ctx context.Context, id uint) (*models.PortfolioUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *PortfolioUserRepo) PortfolioUserExists(ctx context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byID[id]
	return ok, nil
}

func (m *PortfolioUserRepo) ListPortfolioUsers(ctx context.Context) ([]models.PortfolioUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	out := []models.PortfolioUser{}
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *PortfolioUserRepo) SearchPortfolioUsers(ctx context.Context, name string) ([]models.PortfolioUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.PortfolioUser{}
	for _, u := range m.byID {
		if name == "" || strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *PortfolioUserRepo) UpdatePortfolioUser(ctx context.Context, u *models.PortfolioUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[u.ID]; !ok {
		return errs.E(errs.KindNotFound, fmt.Sprintf("Portfolio user with ID %d not found.", u.ID))
	}
	m.byID[u.ID] = *u
	return nil
}

func (m *PortfolioUserRepo) DeletePortfolioUser(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return errs.E(errs.KindNotFound, fmt.Sprintf("Portfolio user with ID %d not found.", id))
	}
	delete(m.byID, id)
	return nil
}

type ProjectRepo struct {
	mu           sync.Mutex
	byID         map[uint]models.Project
	nextID       uint
	ListCalls    int
	ByOwnerCalls int
	UpdateErr    error
}

func (m *ProjectRepo) CreateProject(ctx context.Context, p *models.Project) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	p.ID = m.nextID
	m.byID[p.ID] = *p
	return p.ID, nil
}

func (m *ProjectRepo) GetProjectByID(ctx context.Context, id uint) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *ProjectRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	out := []models.Project{}
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *ProjectRepo) ListProjectsByOwner(ctx context.Context, ownerID uint) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByOwnerCalls++
	out := []models.Project{}
	for _, p := range m.byID {
		if p.PortfolioUserID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *ProjectRepo) SearchProjects(ctx context.Context, title string, ownerID uint) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Project{}
	for _, p := range m.byID {
		if title != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(title)) {
			continue
		}
		if ownerID != 0 && p.PortfolioUserID != ownerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *ProjectRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.byID[p.ID]; !ok {
		return errs.E(errs.KindNotFound, fmt.Sprintf("Project with ID %d not found.", p.ID))
	}
	m.byID[p.ID] = *p
	return nil
}

func (m *ProjectRepo) DeleteProject(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return errs.E(errs.KindNotFound, fmt.Sprintf("Project with ID %d not found.", id))
	}
	delete(m.byID, id)
	return nil
}

type SkillRepo struct {
	mu           sync.Mutex
	byID         map[uint]models.Skill
	nextID       uint
	ListCalls    int
	ByOwnerCalls int
}

func (m *SkillRepo) CreateSkill(ctx context.Context, s *models.Skill) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.byID {
		if other.PortfolioUserID == s.PortfolioUserID && strings.EqualFold(other.Name, s.Name) {
			return 0, errs.E(errs.KindDuplicate,
				fmt.Sprintf("The user already has the skill '%s'. Use PUT to update the skill level.", s.Name))
		}
	}
	m.nextID++
	s.ID = m.nextID
	m.byID[s.ID] = *s
	return s.ID, nil
}

func (m *SkillRepo) GetSkillByID(ctx context.Context, id uint) (*models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *SkillRepo) ListSkills(ctx context.Context) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	out := []models.Skill{}
	for _, s := range m.byID {
		out = append(out, s)
	}
	return out, nil
}

func (m *SkillRepo) ListSkillsByOwner(ctx context.Context, ownerID uint) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByOwnerCalls++
	out := []models.Skill{}
	for _, s := range m.byID {
		if s.PortfolioUserID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *SkillRepo) ListSkillsByLevel(ctx context.Context, level string) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Skill{}
	for _, s := range m.byID {
		if strings.EqualFold(s.Level, level) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *SkillRepo) SearchSkills(ctx context.Context, name, level string, ownerID uint) ([]models.Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Skill{}
	for _, s := range m.byID {
		if name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) {
			continue
		}
		if level != "" && !strings.EqualFold(s.Level, level) {
			continue
		}
		if ownerID != 0 && s.PortfolioUserID != ownerID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *SkillRepo) UpdateSkill(ctx context.Context, s *models.Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[s.ID]; !ok {
		return errs.E(errs.KindNotFound, fmt.Sprintf("Skill with ID %d not found.", s.ID))
	}
	for _, other := range m.byID {
		if other.ID != s.ID && other.PortfolioUserID == s.PortfolioUserID && strings.EqualFold(other.Name, s.Name) {
			return errs.E(errs.KindDuplicate,
				fmt.Sprintf("The user already has another skill with the name '%s'.", s.Name))
		}
	}
	m.byID[s.ID] = *s
	return nil
}

func (m *SkillRepo) DeleteSkill(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return errs.E(errs.KindNotFound, fmt.Sprintf("Skill with ID %d not found.", id))
	}
	delete(m.byID, id)
	return nil
}

type AccountRepo struct {
	mu     sync.Mutex
	byID   map[uint]models.Account
	nextID uint
}

func (m *AccountRepo) CreateAccount(ctx context.Context, a *models.Account) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.byID {
		if strings.EqualFold(other.Email, a.Email) {
			return 0, errs.E(errs.KindDuplicate, "Email is already registered.")
		}
	}
	m.nextID++
	a.ID = m.nextID
	m.byID[a.ID] = *a
	return a.ID, nil
}

func (m *AccountRepo) GetAccountByID(ctx context.Context, id uint) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *AccountRepo) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, nil
}

// StatisticsRepo recomputes aggregates from the project and skill mocks
// so handler tests observe real store state. StatsCalls counts
// recomputations for cache assertions; it reads the maps directly so the
// listing counters stay untouched.
type StatisticsRepo struct {
	mu         sync.Mutex
	projects   *ProjectRepo
	skills     *SkillRepo
	StatsCalls int
}

func (m *StatisticsRepo) ProjectStatistics(ctx context.Context) (*models.ProjectStatistics, error) {
	m.mu.Lock()
	m.StatsCalls++
	m.mu.Unlock()

	m.projects.mu.Lock()
	defer m.projects.mu.Unlock()
	counts := map[uint]int64{}
	for _, p := range m.projects.byID {
		counts[p.PortfolioUserID]++
	}
	return &models.ProjectStatistics{
		TotalProjects:  int64(len(m.projects.byID)),
		TotalUsers:     int64(len(counts)),
		ProjectsByUser: ownerCounts(counts),
	}, nil
}

func (m *StatisticsRepo) SkillStatistics(ctx context.Context) (*models.SkillStatistics, error) {
	m.mu.Lock()
	m.StatsCalls++
	m.mu.Unlock()

	m.skills.mu.Lock()
	defer m.skills.mu.Unlock()
	counts := map[uint]int64{}
	for _, s := range m.skills.byID {
		counts[s.PortfolioUserID]++
	}
	return &models.SkillStatistics{
		TotalSkills:       int64(len(m.skills.byID)),
		TotalUsers:        int64(len(counts)),
		SkillsByLevel:     []models.LevelCount{},
		MostPopularSkills: []models.SkillNameCount{},
		SkillsByUser:      ownerCounts(counts),
	}, nil
}

func (m *StatisticsRepo) PortfolioStatistics(ctx context.Context) (*models.PortfolioStatistics, error) {
	m.mu.Lock()
	m.StatsCalls++
	m.mu.Unlock()

	m.projects.mu.Lock()
	totalProjects := int64(len(m.projects.byID))
	m.projects.mu.Unlock()

	m.skills.mu.Lock()
	totalSkills := int64(len(m.skills.byID))
	m.skills.mu.Unlock()

	return &models.PortfolioStatistics{
		TotalProjects: totalProjects,
		TotalSkills:   totalSkills,
	}, nil
}

func (m *StatisticsRepo) UserStatistics(ctx context.Context, ownerID uint) (*models.UserStatistics, error) {
	m.mu.Lock()
	m.StatsCalls++
	m.mu.Unlock()

	var projectCount, skillCount int64
	m.projects.mu.Lock()
	for _, p := range m.projects.byID {
		if p.PortfolioUserID == ownerID {
			projectCount++
		}
	}
	m.projects.mu.Unlock()

	m.skills.mu.Lock()
	for _, s := range m.skills.byID {
		if s.PortfolioUserID == ownerID {
			skillCount++
		}
	}
	m.skills.mu.Unlock()

	return &models.UserStatistics{
		PortfolioUserID: ownerID,
		ProjectCount:    projectCount,
		SkillCount:      skillCount,
		SkillsByLevel:   []models.LevelCount{},
	}, nil
}

func ownerCounts(counts map[uint]int64) []models.OwnerCount {
	out := []models.OwnerCount{}
	for id, n := range counts {
		out = append(out, models.OwnerCount{PortfolioUserID: id, Count: n})
	}
	return out
}
