package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/garnizeh/skillsnap/internal/cache"
	"github.com/garnizeh/skillsnap/internal/config"
	"github.com/garnizeh/skillsnap/pkg/errs"
	"github.com/garnizeh/skillsnap/pkg/models"
	"github.com/garnizeh/skillsnap/pkg/repository"
)

type ProjectsHandler struct {
	projects repository.ProjectRepo
	users    repository.PortfolioUserRepo
	stats    repository.StatisticsRepo
	cache    *cache.Cache
	inv      *cache.Invalidator
	ttl      config.CacheConfig
}

func NewProjectsHandler(
	pr repository.ProjectRepo,
	ur repository.PortfolioUserRepo,
	sr repository.StatisticsRepo,
	c *cache.Cache,
	inv *cache.Invalidator,
	ttl config.CacheConfig,
) *ProjectsHandler {
	return &ProjectsHandler{projects: pr, users: ur, stats: sr, cache: c, inv: inv, ttl: ttl}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := cache.Fetch(h.cache, cache.KeyAllProjects, h.ttl.ListingTTL, h.ttl.ListingSliding,
		func() ([]models.Project, error) {
			return h.projects.ListProjects(r.Context())
		})
	if err != nil {
		writeError(w, err, "An error occurred while retrieving projects.")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	writeJSON(w, projects, http.StatusOK)
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid project ID.", http.StatusBadRequest)
		return
	}

	project, err := h.projects.GetProjectByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving the project.")
		return
	}
	if project == nil {
		writeMessage(w, fmt.Sprintf("Project with ID %d not found.", id), http.StatusNotFound)
		return
	}

	writeJSON(w, project, http.StatusOK)
}

func (h *ProjectsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ownerID, ok := queryOwnerID(q)
	if !ok {
		writeMessage(w, "Valid PortfolioUserId is required.", http.StatusBadRequest)
		return
	}

	projects, err := h.projects.SearchProjects(r.Context(), q.Get("title"), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while searching projects.")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	writeJSON(w, projects, http.StatusOK)
}

// ByOwner serves the per-owner listing. The cache is consulted before
// the owner-existence check, matching the read path ordering; "owner not
// found" is never cached.
func (h *ProjectsHandler) ByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid portfolio user ID.", http.StatusBadRequest)
		return
	}

	key := cache.KeyProjectsByOwner(ownerID)
	if v, found := h.cache.Get(key); found {
		if projects, ok := v.([]models.Project); ok {
			writeJSON(w, projects, http.StatusOK)
			return
		}
	}

	exists, err := h.users.PortfolioUserExists(r.Context(), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving projects by user.")
		return
	}
	if !exists {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", ownerID), http.StatusNotFound)
		return
	}

	projects, err := h.projects.ListProjectsByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving projects by user.")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	h.cache.Set(key, projects, h.ttl.ListingTTL, h.ttl.ListingSliding)
	writeJSON(w, projects, http.StatusOK)
}

func (h *ProjectsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := cache.Fetch(h.cache, cache.KeyProjectStatistics, h.ttl.StatisticsTTL, 0,
		func() (*models.ProjectStatistics, error) {
			return h.stats.ProjectStatistics(r.Context())
		})
	if err != nil {
		writeError(w, err, "An error occurred while retrieving project statistics.")
		return
	}

	writeJSON(w, stats, http.StatusOK)
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		writeMessage(w, "Invalid request.", http.StatusBadRequest)
		return
	}
	if msg := validationMessage(project); msg != "" {
		writeMessage(w, msg, http.StatusBadRequest)
		return
	}

	exists, err := h.users.PortfolioUserExists(r.Context(), project.PortfolioUserID)
	if err != nil {
		writeError(w, err, "An error occurred while creating the project.")
		return
	}
	if !exists {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", project.PortfolioUserID), http.StatusBadRequest)
		return
	}

	project.ID = 0
	id, err := h.projects.CreateProject(r.Context(), &project)
	if err != nil {
		writeError(w, err, "An error occurred while creating the project.")
		return
	}

	h.inv.ProjectsChanged(project.PortfolioUserID)

	created, err := h.projects.GetProjectByID(r.Context(), id)
	if err != nil || created == nil {
		// the row committed; fall back to what we already hold
		created = &project
	}
	writeJSON(w, created, http.StatusCreated)
}

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid project ID.", http.StatusBadRequest)
		return
	}

	var req models.Project
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, "Invalid request.", http.StatusBadRequest)
		return
	}
	if req.ID != 0 && req.ID != id {
		writeMessage(w, "ID mismatch.", http.StatusBadRequest)
		return
	}
	if msg := validationMessage(req); msg != "" {
		writeMessage(w, msg, http.StatusBadRequest)
		return
	}

	exists, err := h.users.PortfolioUserExists(r.Context(), req.PortfolioUserID)
	if err != nil {
		writeError(w, err, "An error occurred while updating the project.")
		return
	}
	if !exists {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", req.PortfolioUserID), http.StatusBadRequest)
		return
	}

	existing, err := h.projects.GetProjectByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "An error occurred while updating the project.")
		return
	}
	if existing == nil {
		writeMessage(w, fmt.Sprintf("Project with ID %d not found.", id), http.StatusNotFound)
		return
	}

	originalOwner := existing.PortfolioUserID
	existing.Title = req.Title
	existing.Description = req.Description
	existing.ImageURL = req.ImageURL
	existing.PortfolioUserID = req.PortfolioUserID

	if err := h.projects.UpdateProject(r.Context(), existing); err != nil {
		writeError(w, err, "An error occurred while updating the project.")
		return
	}

	owners := []uint{originalOwner}
	if originalOwner != existing.PortfolioUserID {
		owners = append(owners, existing.PortfolioUserID)
	}
	h.inv.ProjectsChanged(owners...)

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid project ID.", http.StatusBadRequest)
		return
	}

	existing, err := h.projects.GetProjectByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "An error occurred while deleting the project.")
		return
	}
	if existing == nil {
		writeMessage(w, fmt.Sprintf("Project with ID %d not found.", id), http.StatusNotFound)
		return
	}

	if err := h.projects.DeleteProject(r.Context(), id); err != nil {
		if errs.Is(err, errs.KindNotFound) {
			writeError(w, err, "")
			return
		}
		writeError(w, err, "An error occurred while deleting the project.")
		return
	}

	h.inv.ProjectsChanged(existing.PortfolioUserID)

	w.WriteHeader(http.StatusNoContent)
}
