package cache

import "fmt"

// Cache keys are derived deterministically from the read operation and
// its parameters. They are implementation-internal, not part of the wire
// contract.
const (
	KeyAllProjects         = "all_projects"
	KeyProjectStatistics   = "projects_statistics"
	KeyAllSkills           = "all_skills"
	KeySkillStatistics     = "skills_statistics"
	KeyAllPortfolioUsers   = "all_portfolio_users"
	KeyPortfolioStatistics = "portfolio_users_statistics"
)

func KeyProjectsByOwner(ownerID uint) string {
	return fmt.Sprintf("projects_user_%d", ownerID)
}

func KeySkillsByOwner(ownerID uint) string {
	return fmt.Sprintf("skills_user_%d", ownerID)
}

func KeyUserStatistics(ownerID uint) string {
	return fmt.Sprintf("user_statistics_%d", ownerID)
}
