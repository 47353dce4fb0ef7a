package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/devforge/pmagent/models"
)

// mvpStoryCount is how many leading stories the summary shows in full.
const mvpStoryCount = 4

// renderMarkdown produces the human-readable README for a feature record.
// The layout is fixed: title, description, tech stack, MVP feature bullets,
// the MVP stories with their acceptance checklists, every API endpoint, and
// a status footer.
func renderMarkdown(record *models.FeatureRecord) string {
	spec := record.Specification
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", spec.Title))
	sb.WriteString(fmt.Sprintf("## Description\n%s\n\n", spec.Description))
	sb.WriteString(fmt.Sprintf("## Tech Stack\n%s\n\n", spec.TechStack))

	sb.WriteString("## MVP Features\n")
	for _, feature := range spec.MVPFeatures {
		sb.WriteString(fmt.Sprintf("- %s\n", feature))
	}

	sb.WriteString("\n## User Stories\n\n")
	stories := record.UserStories
	if len(stories) > mvpStoryCount {
		stories = stories[:mvpStoryCount]
	}
	for _, story := range stories {
		sb.WriteString(fmt.Sprintf("### %s (%s)\n", story.ID, strings.ToUpper(string(story.Priority))))
		sb.WriteString(fmt.Sprintf("\n**%s,** %s\n", story.Role, story.Action))
		sb.WriteString(fmt.Sprintf("*%s*\n\n", story.Benefit))
		sb.WriteString(fmt.Sprintf("**Story Points:** %d\n\n", story.StoryPoints))

		if block, ok := record.AcceptanceCriteria[story.ID]; ok {
			sb.WriteString("**Acceptance Criteria:**\n")
			for _, criterion := range block.Criteria {
				sb.WriteString(fmt.Sprintf("- [ ] %s\n", criterion))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n## API Endpoints\n\n")
	for _, endpoint := range record.APISpecification.Endpoints {
		sb.WriteString(fmt.Sprintf("### %s %s\n", endpoint.Method, endpoint.Path))
		sb.WriteString(fmt.Sprintf("%s\n\n", endpoint.Description))
	}

	sb.WriteString("\n## Status\n")
	sb.WriteString(fmt.Sprintf("- Current Status: %s\n", record.Status))
	sb.WriteString(fmt.Sprintf("- Created: %s\n", record.CreatedAt.Format(time.RFC3339)))
	sb.WriteString("- Next Step: Awaiting development\n")

	return sb.String()
}
