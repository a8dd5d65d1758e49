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

type PortfolioUsersHandler struct {
	users    repository.PortfolioUserRepo
	projects repository.ProjectRepo
	skills   repository.SkillRepo
	stats    repository.StatisticsRepo
	cache    *cache.Cache
	inv      *cache.Invalidator
	ttl      config.CacheConfig
}

func NewPortfolioUsersHandler(
	ur repository.PortfolioUserRepo,
	pr repository.ProjectRepo,
	sr repository.SkillRepo,
	st repository.StatisticsRepo,
	c *cache.Cache,
	inv *cache.Invalidator,
	ttl config.CacheConfig,
) *PortfolioUsersHandler {
	return &PortfolioUsersHandler{
		users:    ur,
		projects: pr,
		skills:   sr,
		stats:    st,
		cache:    c,
		inv:      inv,
		ttl:      ttl,
	}
}

func (h *PortfolioUsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := cache.Fetch(h.cache, cache.KeyAllPortfolioUsers, h.ttl.ListingTTL, h.ttl.ListingSliding,
		func() ([]models.PortfolioUser, error) {
			return h.users.ListPortfolioUsers(r.Context())
		})
	if err != nil {
		writeError(w, err, "An error occurred while retrieving portfolio users.")
		return
	}
	if users == nil {
		users = []models.PortfolioUser{}
	}

	writeJSON(w, users, http.StatusOK)
}

func (h *PortfolioUsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid portfolio user ID.", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetPortfolioUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving the portfolio user.")
		return
	}
	if user == nil {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", id), http.StatusNotFound)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

func (h *PortfolioUsersHandler) Search(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.SearchPortfolioUsers(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, err, "An error occurred while searching portfolio users.")
		return
	}
	if users == nil {
		users = []models.PortfolioUser{}
	}

	writeJSON(w, users, http.StatusOK)
}

// Projects serves GET /portfolio-users/{id}/projects. It shares the
// per-owner cache key with GET /projects/by-user/{id}: same operation,
// same parameters, same entry.
func (h *PortfolioUsersHandler) Projects(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, err, "An error occurred while retrieving projects.")
		return
	}
	if !exists {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", ownerID), http.StatusNotFound)
		return
	}

	projects, err := h.projects.ListProjectsByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving projects.")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	h.cache.Set(key, projects, h.ttl.ListingTTL, h.ttl.ListingSliding)
	writeJSON(w, projects, http.StatusOK)
}

func (h *PortfolioUsersHandler) Skills(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid portfolio user ID.", http.StatusBadRequest)
		return
	}

	key := cache.KeySkillsByOwner(ownerID)
	if v, found := h.cache.Get(key); found {
		if skills, ok := v.([]models.Skill); ok {
			writeJSON(w, skills, http.StatusOK)
			return
		}
	}

	exists, err := h.users.PortfolioUserExists(r.Context(), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving skills.")
		return
	}
	if !exists {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", ownerID), http.StatusNotFound)
		return
	}

	skills, err := h.skills.ListSkillsByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving skills.")
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}

	h.cache.Set(key, skills, h.ttl.ListingTTL, h.ttl.ListingSliding)
	writeJSON(w, skills, http.StatusOK)
}

func (h *PortfolioUsersHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := cache.Fetch(h.cache, cache.KeyPortfolioStatistics, h.ttl.StatisticsTTL, 0,
		func() (*models.PortfolioStatistics, error) {
			return h.stats.PortfolioStatistics(r.Context())
		})
	if err != nil {
		writeError(w, err, "An error occurred while retrieving portfolio statistics.")
		return
	}

	writeJSON(w, stats, http.StatusOK)
}

func (h *PortfolioUsersHandler) UserStatistics(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid portfolio user ID.", http.StatusBadRequest)
		return
	}

	key := cache.KeyUserStatistics(ownerID)
	if v, found := h.cache.Get(key); found {
		if stats, ok := v.(*models.UserStatistics); ok {
			writeJSON(w, stats, http.StatusOK)
			return
		}
	}

	exists, err := h.users.PortfolioUserExists(r.Context(), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving user statistics.")
		return
	}
	if !exists {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", ownerID), http.StatusNotFound)
		return
	}

	stats, err := h.stats.UserStatistics(r.Context(), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving user statistics.")
		return
	}

	h.cache.Set(key, stats, h.ttl.StatisticsTTL, 0)
	writeJSON(w, stats, http.StatusOK)
}

func (h *PortfolioUsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user models.PortfolioUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeMessage(w, "Invalid request.", http.StatusBadRequest)
		return
	}
	if msg := validationMessage(user); msg != "" {
		writeMessage(w, msg, http.StatusBadRequest)
		return
	}

	user.ID = 0
	id, err := h.users.CreatePortfolioUser(r.Context(), &user)
	if err != nil {
		writeError(w, err, "An error occurred while creating the portfolio user.")
		return
	}

	h.inv.PortfolioUsersChanged(id)

	created, err := h.users.GetPortfolioUserByID(r.Context(), id)
	if err != nil || created == nil {
		created = &user
	}
	writeJSON(w, created, http.StatusCreated)
}

func (h *PortfolioUsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid portfolio user ID.", http.StatusBadRequest)
		return
	}

	var req models.PortfolioUser
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

	existing, err := h.users.GetPortfolioUserByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "An error occurred while updating the portfolio user.")
		return
	}
	if existing == nil {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", id), http.StatusNotFound)
		return
	}

	existing.Name = req.Name
	existing.Bio = req.Bio
	existing.ProfileImageURL = req.ProfileImageURL

	if err := h.users.UpdatePortfolioUser(r.Context(), existing); err != nil {
		writeError(w, err, "An error occurred while updating the portfolio user.")
		return
	}

	h.inv.PortfolioUsersChanged(id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *PortfolioUsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid portfolio user ID.", http.StatusBadRequest)
		return
	}

	if err := h.users.DeletePortfolioUser(r.Context(), id); err != nil {
		if errs.Is(err, errs.KindNotFound) {
			writeError(w, err, "")
			return
		}
		writeError(w, err, "An error occurred while deleting the portfolio user.")
		return
	}

	h.inv.PortfolioUsersChanged(id)

	w.WriteHeader(http.StatusNoContent)
}
