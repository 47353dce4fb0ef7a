package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/devforge/pmagent/models"
)

// DefaultTechStack is recorded when the caller gives no tech-stack hint.
const DefaultTechStack = "Modern web stack (TBD by Dev team)"

// featureTypes are the categories a specification can be tagged with. The
// tag is chosen at random and is purely descriptive: no downstream generator
// reads it.
var featureTypes = []string{
	"web_application",
	"mobile_app",
	"api_service",
	"cli_tool",
	"data_pipeline",
	"automation_script",
}

// TemplateStrategy generates feature records from fixed lookup tables.
type TemplateStrategy struct {
	rng *rand.Rand
}

// NewTemplateStrategy returns a template strategy with a time-seeded RNG.
func NewTemplateStrategy() *TemplateStrategy {
	return &TemplateStrategy{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededTemplateStrategy returns a template strategy with a fixed seed so
// tests can pin the feature type.
func NewSeededTemplateStrategy(seed int64) *TemplateStrategy {
	return &TemplateStrategy{rng: rand.New(rand.NewSource(seed))}
}

// Name implements Strategy.
func (s *TemplateStrategy) Name() string { return "template" }

// Specification implements Strategy. The idea string is carried verbatim
// into the title and the first MVP feature.
func (s *TemplateStrategy) Specification(idea, techStack string) models.SpecificationBlock {
	if techStack == "" {
		techStack = DefaultTechStack
	}
	return models.SpecificationBlock{
		Title:       idea,
		Description: fmt.Sprintf("A comprehensive solution for %s", idea),
		Type:        featureTypes[s.rng.Intn(len(featureTypes))],
		TechStack:   techStack,
		MVPFeatures: []string{
			fmt.Sprintf("Core %s functionality", idea),
			"User authentication",
			"Basic CRUD operations",
			"Simple dashboard",
		},
		V2Features: []string{
			"Advanced analytics",
			"Third-party integrations",
			"Mobile responsiveness",
			"Performance optimizations",
		},
		TargetUsers: "End users and administrators",
		SuccessMetrics: []string{
			"User adoption rate",
			"Feature completion",
			"Performance benchmarks",
		},
	}
}

// Stories implements Strategy. The sequence is fixed: four MVP stories
// followed by two V2 stories. Only US-001 depends on the specification
// block, via its title.
func (s *TemplateStrategy) Stories(spec models.SpecificationBlock) []models.Story {
	return []models.Story{
		{
			ID:          "US-001",
			Role:        "As a user",
			Action:      fmt.Sprintf("I want to access %s", spec.Title),
			Benefit:     "So that I can use the core functionality",
			Priority:    models.PriorityHigh,
			StoryPoints: 3,
		},
		{
			ID:          "US-002",
			Role:        "As a user",
			Action:      "I want to create an account",
			Benefit:     "So that I can save my data",
			Priority:    models.PriorityHigh,
			StoryPoints: 5,
		},
		{
			ID:          "US-003",
			Role:        "As a user",
			Action:      "I want to manage my content",
			Benefit:     "So that I can organize my work",
			Priority:    models.PriorityHigh,
			StoryPoints: 5,
		},
		{
			ID:          "US-004",
			Role:        "As an admin",
			Action:      "I want to view user analytics",
			Benefit:     "So that I can understand usage patterns",
			Priority:    models.PriorityMedium,
			StoryPoints: 8,
		},
		{
			ID:          "US-005",
			Role:        "As a user",
			Action:      "I want to export my data",
			Benefit:     "So that I can use it elsewhere",
			Priority:    models.PriorityLow,
			StoryPoints: 3,
		},
		{
			ID:          "US-006",
			Role:        "As a user",
			Action:      "I want to receive notifications",
			Benefit:     "So that I stay updated",
			Priority:    models.PriorityLow,
			StoryPoints: 5,
		},
	}
}

// TechnicalRequirements implements Strategy. The rows are constant; the
// tech-stack hint is intentionally unused here (it is only recorded on the
// specification block).
func (s *TemplateStrategy) TechnicalRequirements(techStack string) []models.TechnicalRequirement {
	return []models.TechnicalRequirement{
		{
			Category:     "Frontend",
			Requirement:  "Responsive web interface",
			Technologies: []string{"React", "Vue", "Angular"},
			Priority:     models.PriorityHigh,
		},
		{
			Category:     "Backend",
			Requirement:  "RESTful API",
			Technologies: []string{"Node.js/Express", "Python/FastAPI", "Go"},
			Priority:     models.PriorityHigh,
		},
		{
			Category:     "Database",
			Requirement:  "Persistent data storage",
			Technologies: []string{"PostgreSQL", "MongoDB", "SQLite"},
			Priority:     models.PriorityHigh,
		},
		{
			Category:     "Authentication",
			Requirement:  "Secure user authentication",
			Technologies: []string{"JWT", "OAuth2", "Session-based"},
			Priority:     models.PriorityHigh,
		},
		{
			Category:     "Testing",
			Requirement:  "Automated test coverage",
			Technologies: []string{"Jest", "PyTest", "Cypress"},
			Priority:     models.PriorityMedium,
		},
		{
			Category:     "Deployment",
			Requirement:  "Containerized deployment",
			Technologies: []string{"Docker", "Docker Compose"},
			Priority:     models.PriorityMedium,
		},
	}
}

// APISpec implements Strategy.
func (s *TemplateStrategy) APISpec() models.APISpec {
	return models.APISpec{
		Version: "v1",
		BaseURL: "/api/v1",
		Endpoints: []models.Endpoint{
			{
				Path:        "/auth/register",
				Method:      "POST",
				Description: "Register new user",
				Request:     map[string]string{"email": "string", "password": "string"},
				Response:    map[string]string{"token": "string", "user": "object"},
			},
			{
				Path:        "/auth/login",
				Method:      "POST",
				Description: "User login",
				Request:     map[string]string{"email": "string", "password": "string"},
				Response:    map[string]string{"token": "string", "user": "object"},
			},
			{
				Path:        "/items",
				Method:      "GET",
				Description: "List all items",
				Auth:        true,
				Response:    map[string]string{"items": "array"},
			},
			{
				Path:        "/items",
				Method:      "POST",
				Description: "Create new item",
				Auth:        true,
				Request:     map[string]string{"title": "string", "content": "string"},
				Response:    map[string]string{"item": "object"},
			},
			{
				Path:        "/items/:id",
				Method:      "GET",
				Description: "Get single item",
				Auth:        true,
				Response:    map[string]string{"item": "object"},
			},
			{
				Path:        "/items/:id",
				Method:      "PUT",
				Description: "Update item",
				Auth:        true,
				Request:     map[string]string{"title": "string", "content": "string"},
				Response:    map[string]string{"item": "object"},
			},
			{
				Path:        "/items/:id",
				Method:      "DELETE",
				Description: "Delete item",
				Auth:        true,
				Response:    map[string]string{"success": "boolean"},
			},
		},
	}
}

// DatabaseSchema implements Strategy.
func (s *TemplateStrategy) DatabaseSchema() models.DBSchema {
	return models.DBSchema{
		Database: "PostgreSQL",
		Tables: []models.Table{
			{
				Name: "users",
				Columns: []models.Column{
					{Name: "id", Type: "UUID", PrimaryKey: true},
					{Name: "email", Type: "VARCHAR(255)", Unique: true},
					{Name: "password_hash", Type: "VARCHAR(255)"},
					{Name: "created_at", Type: "TIMESTAMP"},
					{Name: "updated_at", Type: "TIMESTAMP"},
				},
			},
			{
				Name: "items",
				Columns: []models.Column{
					{Name: "id", Type: "UUID", PrimaryKey: true},
					{Name: "user_id", Type: "UUID", ForeignKey: "users.id"},
					{Name: "title", Type: "VARCHAR(255)"},
					{Name: "content", Type: "TEXT"},
					{Name: "status", Type: "VARCHAR(50)"},
					{Name: "created_at", Type: "TIMESTAMP"},
					{Name: "updated_at", Type: "TIMESTAMP"},
				},
			},
		},
	}
}
