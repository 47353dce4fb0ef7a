package generator

import (
	"strings"

	"github.com/devforge/pmagent/models"
)

// criteriaRule pairs a trigger keyword with the checklist it selects. Rules
// are evaluated in order against the lowercased story action; the first
// match wins. The ordering is part of the contract: a story mentioning both
// "account" and "manage" must get the authentication checklist.
type criteriaRule struct {
	keyword   string
	checklist []string
}

var criteriaRules = []criteriaRule{
	{
		keyword: "account",
		checklist: []string{
			"User can register with email/password",
			"User can login with credentials",
			"User can logout",
			"Password must be at least 8 characters",
			"User receives confirmation email",
		},
	},
	{
		keyword: "manage",
		checklist: []string{
			"User can create new items",
			"User can read/view items",
			"User can update items",
			"User can delete items",
			"Changes persist after refresh",
		},
	},
	{
		keyword: "analytics",
		checklist: []string{
			"Dashboard displays user count",
			"Charts show activity over time",
			"Data updates in real-time",
			"Export function works",
		},
	},
}

// genericChecklist is the fallback when no rule matches.
var genericChecklist = []string{
	"Feature is accessible from main navigation",
	"Feature works on desktop and mobile",
	"Response time is under 2 seconds",
	"Error handling is implemented",
}

// Criteria implements Strategy. Each story gets a fresh copy of the selected
// checklist so callers can never alias the shared tables.
func (s *TemplateStrategy) Criteria(stories []models.Story) map[string]models.CriteriaBlock {
	criteria := make(map[string]models.CriteriaBlock, len(stories))
	for _, story := range stories {
		criteria[story.ID] = models.CriteriaBlock{
			Story:    story.Action,
			Criteria: checklistFor(story.Action),
		}
	}
	return criteria
}

func checklistFor(action string) []string {
	lowered := strings.ToLower(action)
	for _, rule := range criteriaRules {
		if strings.Contains(lowered, rule.keyword) {
			return append([]string(nil), rule.checklist...)
		}
	}
	return append([]string(nil), genericChecklist...)
}
