// Package generator turns a product idea into a complete feature record.
// Generation is strategy-driven: the only strategy shipped today is the
// template strategy, which works from fixed lookup tables. The credential
// map loaded at startup selects between strategies once a model-backed one
// exists.
package generator

import (
	"fmt"
	"time"

	"github.com/devforge/pmagent/models"
)

// Strategy produces the individual blocks of a feature record.
type Strategy interface {
	// Name identifies the strategy in progress output and logs.
	Name() string
	// Specification builds the high-level feature description.
	Specification(idea, techStack string) models.SpecificationBlock
	// Stories returns the ordered user stories for a specification.
	Stories(spec models.SpecificationBlock) []models.Story
	// Criteria selects an acceptance checklist for each story, keyed by
	// story ID.
	Criteria(stories []models.Story) map[string]models.CriteriaBlock
	// TechnicalRequirements returns the requirement rows. The tech-stack
	// hint is accepted for forward compatibility but does not alter the
	// template output.
	TechnicalRequirements(techStack string) []models.TechnicalRequirement
	// APISpec returns the REST endpoint skeleton.
	APISpec() models.APISpec
	// DatabaseSchema returns the relational schema skeleton.
	DatabaseSchema() models.DBSchema
}

// Credential keys recognized by the agent. Neither selects a live backend
// yet; they are carried so a model-backed strategy can be dropped in without
// touching the call sites.
const (
	CredentialOpenAI    = "OPENAI_API_KEY"
	CredentialAnthropic = "ANTHROPIC_API_KEY"
)

// Generator assembles feature records from a strategy.
type Generator struct {
	strategy    Strategy
	version     string
	credentials map[string]string
	now         func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the clock used for record timestamps. Tests use this
// to pin created_at.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithStrategy replaces the default template strategy.
func WithStrategy(s Strategy) Option {
	return func(g *Generator) { g.strategy = s }
}

// New returns a Generator using the template strategy. The credential map
// (typically from credentials.Load) is retained for strategy selection;
// with only the template strategy available it never changes the outcome.
func New(version string, creds map[string]string, opts ...Option) *Generator {
	g := &Generator{
		strategy:    NewTemplateStrategy(),
		version:     version,
		credentials: creds,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// StrategyByName resolves the configured strategy name. An empty name
// selects the template strategy.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", "template":
		return NewTemplateStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown generation strategy: %s", name)
	}
}

// Strategy returns the active generation strategy.
func (g *Generator) Strategy() Strategy {
	return g.strategy
}

// Providers lists the credential keys that are present and non-empty, in a
// fixed order. Used only for verbose output.
func (g *Generator) Providers() []string {
	var providers []string
	for _, key := range []string{CredentialOpenAI, CredentialAnthropic} {
		if g.credentials[key] != "" {
			providers = append(providers, key)
		}
	}
	return providers
}

// Generate builds the full feature record for an idea. The identifier must
// already be allocated (and reserved) by the store. The record is complete
// and immutable once returned.
func (g *Generator) Generate(id, idea, techStack string) *models.FeatureRecord {
	spec := g.strategy.Specification(idea, techStack)
	stories := g.strategy.Stories(spec)

	return &models.FeatureRecord{
		ID:                    id,
		Idea:                  idea,
		Specification:         spec,
		UserStories:           stories,
		AcceptanceCriteria:    g.strategy.Criteria(stories),
		TechnicalRequirements: g.strategy.TechnicalRequirements(techStack),
		APISpecification:      g.strategy.APISpec(),
		DatabaseSchema:        g.strategy.DatabaseSchema(),
		Status:                models.StatusSpecReady,
		CreatedAt:             g.now().UTC(),
		PMAgent:               g.version,
	}
}
