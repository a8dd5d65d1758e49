package cache

import "log/slog"

// Invalidator evicts the cache keys a committed write can stale. It must
// be called strictly after the store transaction commits. Eviction is
// best-effort: it never fails the write it follows.
type Invalidator struct {
	cache *Cache
	log   *slog.Logger
}

func NewInvalidator(c *Cache, log *slog.Logger) *Invalidator {
	if log == nil {
		log = slog.Default()
	}
	return &Invalidator{cache: c, log: log}
}

// ProjectsChanged handles a create, update or delete of projects owned
// by ownerIDs. An update that moved ownership passes both the original
// and the new owner. The user-scoped keys are evicted too because user
// listings and user statistics embed project rows.
func (i *Invalidator) ProjectsChanged(ownerIDs ...uint) {
	keys := []string{KeyAllProjects, KeyProjectStatistics, KeyAllPortfolioUsers, KeyPortfolioStatistics}
	for _, id := range ownerIDs {
		keys = append(keys, KeyProjectsByOwner(id), KeyUserStatistics(id))
	}
	i.evict(keys)
}

// SkillsChanged is the skill counterpart of ProjectsChanged.
func (i *Invalidator) SkillsChanged(ownerIDs ...uint) {
	keys := []string{KeyAllSkills, KeySkillStatistics, KeyAllPortfolioUsers, KeyPortfolioStatistics}
	for _, id := range ownerIDs {
		keys = append(keys, KeySkillsByOwner(id), KeyUserStatistics(id))
	}
	i.evict(keys)
}

// PortfolioUsersChanged handles user writes. Deleting a user cascades
// its projects and skills, so every entity-scoped key the cascade can
// stale goes too.
func (i *Invalidator) PortfolioUsersChanged(ids ...uint) {
	keys := []string{
		KeyAllPortfolioUsers, KeyPortfolioStatistics,
		KeyAllProjects, KeyProjectStatistics,
		KeyAllSkills, KeySkillStatistics,
	}
	for _, id := range ids {
		keys = append(keys, KeyProjectsByOwner(id), KeySkillsByOwner(id), KeyUserStatistics(id))
	}
	i.evict(keys)
}

func (i *Invalidator) evict(keys []string) {
	i.cache.Remove(keys...)
	i.log.Debug("cache invalidated", slog.Any("keys", keys))
}
