package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/garnizeh/skillsnap/internal/cache"
	"github.com/garnizeh/skillsnap/internal/config"
	"github.com/garnizeh/skillsnap/pkg/errs"
	"github.com/garnizeh/skillsnap/pkg/models"
	"github.com/garnizeh/skillsnap/pkg/repository"
)

type SkillsHandler struct {
	skills repository.SkillRepo
	users  repository.PortfolioUserRepo
	stats  repository.StatisticsRepo
	cache  *cache.Cache
	inv    *cache.Invalidator
	ttl    config.CacheConfig
}

func NewSkillsHandler(
	sr repository.SkillRepo,
	ur repository.PortfolioUserRepo,
	st repository.StatisticsRepo,
	c *cache.Cache,
	inv *cache.Invalidator,
	ttl config.CacheConfig,
) *SkillsHandler {
	return &SkillsHandler{skills: sr, users: ur, stats: st, cache: c, inv: inv, ttl: ttl}
}

func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := cache.Fetch(h.cache, cache.KeyAllSkills, h.ttl.ListingTTL, h.ttl.ListingSliding,
		func() ([]models.Skill, error) {
			return h.skills.ListSkills(r.Context())
		})
	if err != nil {
		writeError(w, err, "An error occurred while retrieving skills.")
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}

	writeJSON(w, skills, http.StatusOK)
}

func (h *SkillsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid skill ID.", http.StatusBadRequest)
		return
	}

	skill, err := h.skills.GetSkillByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving the skill.")
		return
	}
	if skill == nil {
		writeMessage(w, fmt.Sprintf("Skill with ID %d not found.", id), http.StatusNotFound)
		return
	}

	writeJSON(w, skill, http.StatusOK)
}

func (h *SkillsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ownerID, ok := queryOwnerID(q)
	if !ok {
		writeMessage(w, "Valid PortfolioUserId is required.", http.StatusBadRequest)
		return
	}

	skills, err := h.skills.SearchSkills(r.Context(), q.Get("name"), q.Get("level"), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while searching skills.")
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}

	writeJSON(w, skills, http.StatusOK)
}

func (h *SkillsHandler) ByOwner(w http.ResponseWriter, r *http.Request) {
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
		writeError(w, err, "An error occurred while retrieving skills by user.")
		return
	}
	if !exists {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", ownerID), http.StatusNotFound)
		return
	}

	skills, err := h.skills.ListSkillsByOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving skills by user.")
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}

	h.cache.Set(key, skills, h.ttl.ListingTTL, h.ttl.ListingSliding)
	writeJSON(w, skills, http.StatusOK)
}

func (h *SkillsHandler) ByLevel(w http.ResponseWriter, r *http.Request) {
	level := mux.Vars(r)["level"]

	skills, err := h.skills.ListSkillsByLevel(r.Context(), level)
	if err != nil {
		writeError(w, err, "An error occurred while retrieving skills by level.")
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}

	writeJSON(w, skills, http.StatusOK)
}

// Levels serves the static enumerated list of valid skill levels.
func (h *SkillsHandler) Levels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, models.SkillLevels, http.StatusOK)
}

func (h *SkillsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := cache.Fetch(h.cache, cache.KeySkillStatistics, h.ttl.StatisticsTTL, 0,
		func() (*models.SkillStatistics, error) {
			return h.stats.SkillStatistics(r.Context())
		})
	if err != nil {
		writeError(w, err, "An error occurred while retrieving skill statistics.")
		return
	}

	writeJSON(w, stats, http.StatusOK)
}

func (h *SkillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var skill models.Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		writeMessage(w, "Invalid request.", http.StatusBadRequest)
		return
	}
	if msg := validationMessage(skill); msg != "" {
		writeMessage(w, msg, http.StatusBadRequest)
		return
	}
	if !models.ValidSkillLevel(skill.Level) {
		writeMessage(w, invalidLevelMessage(), http.StatusBadRequest)
		return
	}

	exists, err := h.users.PortfolioUserExists(r.Context(), skill.PortfolioUserID)
	if err != nil {
		writeError(w, err, "An error occurred while creating the skill.")
		return
	}
	if !exists {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", skill.PortfolioUserID), http.StatusBadRequest)
		return
	}

	skill.ID = 0
	id, err := h.skills.CreateSkill(r.Context(), &skill)
	if err != nil {
		writeError(w, err, "An error occurred while creating the skill.")
		return
	}

	h.inv.SkillsChanged(skill.PortfolioUserID)

	created, err := h.skills.GetSkillByID(r.Context(), id)
	if err != nil || created == nil {
		created = &skill
	}
	writeJSON(w, created, http.StatusCreated)
}

func (h *SkillsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid skill ID.", http.StatusBadRequest)
		return
	}

	var req models.Skill
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
	if !models.ValidSkillLevel(req.Level) {
		writeMessage(w, invalidLevelMessage(), http.StatusBadRequest)
		return
	}

	exists, err := h.users.PortfolioUserExists(r.Context(), req.PortfolioUserID)
	if err != nil {
		writeError(w, err, "An error occurred while updating the skill.")
		return
	}
	if !exists {
		writeMessage(w, fmt.Sprintf("Portfolio user with ID %d not found.", req.PortfolioUserID), http.StatusBadRequest)
		return
	}

	existing, err := h.skills.GetSkillByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "An error occurred while updating the skill.")
		return
	}
	if existing == nil {
		writeMessage(w, fmt.Sprintf("Skill with ID %d not found.", id), http.StatusNotFound)
		return
	}

	originalOwner := existing.PortfolioUserID
	existing.Name = req.Name
	existing.Level = req.Level
	existing.PortfolioUserID = req.PortfolioUserID

	if err := h.skills.UpdateSkill(r.Context(), existing); err != nil {
		writeError(w, err, "An error occurred while updating the skill.")
		return
	}

	owners := []uint{originalOwner}
	if originalOwner != existing.PortfolioUserID {
		owners = append(owners, existing.PortfolioUserID)
	}
	h.inv.SkillsChanged(owners...)

	w.WriteHeader(http.StatusNoContent)
}

func (h *SkillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, "Invalid skill ID.", http.StatusBadRequest)
		return
	}

	existing, err := h.skills.GetSkillByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "An error occurred while deleting the skill.")
		return
	}
	if existing == nil {
		writeMessage(w, fmt.Sprintf("Skill with ID %d not found.", id), http.StatusNotFound)
		return
	}

	if err := h.skills.DeleteSkill(r.Context(), id); err != nil {
		if errs.Is(err, errs.KindNotFound) {
			writeError(w, err, "")
			return
		}
		writeError(w, err, "An error occurred while deleting the skill.")
		return
	}

	h.inv.SkillsChanged(existing.PortfolioUserID)

	w.WriteHeader(http.StatusNoContent)
}

func invalidLevelMessage() string {
	return fmt.Sprintf("Invalid skill level. Valid levels are: %s", strings.Join(models.SkillLevels, ", "))
}
