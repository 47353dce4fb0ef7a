// Package models defines the feature record aggregate produced by the PM
// agent pipeline and its child records.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FeatureStatus represents the lifecycle state of a feature record. The
// pipeline produces records in exactly one state; no transitions are modeled.
type FeatureStatus string

const (
	StatusSpecReady FeatureStatus = "spec_ready"
)

// StoryPriority represents the priority levels of a user story.
type StoryPriority string

const (
	PriorityLow    StoryPriority = "low"
	PriorityMedium StoryPriority = "medium"
	PriorityHigh   StoryPriority = "high"
)

// FeatureRecord is the top-level aggregate for one generation run. It is
// assembled once and never mutated after being written to disk.
type FeatureRecord struct {
	ID                    string                   `json:"id" yaml:"id" validate:"required,feature_id"`
	Idea                  string                   `json:"idea" yaml:"idea" validate:"required"`
	Specification         SpecificationBlock       `json:"specification" yaml:"specification" validate:"required"`
	UserStories           []Story                  `json:"user_stories" yaml:"user_stories" validate:"min=1,dive"`
	AcceptanceCriteria    map[string]CriteriaBlock `json:"acceptance_criteria" yaml:"acceptance_criteria" validate:"min=1"`
	TechnicalRequirements []TechnicalRequirement   `json:"technical_requirements" yaml:"technical_requirements" validate:"min=1,dive"`
	APISpecification      APISpec                  `json:"api_specification" yaml:"api_specification"`
	DatabaseSchema        DBSchema                 `json:"database_schema" yaml:"database_schema"`
	Status                FeatureStatus            `json:"status" yaml:"status" validate:"required,oneof=spec_ready"`
	CreatedAt             time.Time                `json:"created_at" yaml:"created_at" validate:"required"`
	PMAgent               string                   `json:"pm_agent" yaml:"pm_agent" validate:"required"`
}

// SpecificationBlock describes the feature at a high level.
type SpecificationBlock struct {
	Title          string   `json:"title" yaml:"title" validate:"required"`
	Description    string   `json:"description" yaml:"description" validate:"required"`
	Type           string   `json:"type" yaml:"type" validate:"required,oneof=web_application mobile_app api_service cli_tool data_pipeline automation_script"`
	TechStack      string   `json:"tech_stack" yaml:"tech_stack" validate:"required"`
	MVPFeatures    []string `json:"mvp_features" yaml:"mvp_features" validate:"min=1"`
	V2Features     []string `json:"v2_features" yaml:"v2_features" validate:"min=1"`
	TargetUsers    string   `json:"target_users" yaml:"target_users"`
	SuccessMetrics []string `json:"success_metrics" yaml:"success_metrics"`
}

// Story is a single user story in role/action/benefit form.
type Story struct {
	ID          string        `json:"id" yaml:"id" validate:"required"`
	Role        string        `json:"role" yaml:"role" validate:"required"`
	Action      string        `json:"action" yaml:"action" validate:"required"`
	Benefit     string        `json:"benefit" yaml:"benefit" validate:"required"`
	Priority    StoryPriority `json:"priority" yaml:"priority" validate:"required,oneof=low medium high"`
	StoryPoints int           `json:"story_points" yaml:"story_points" validate:"min=1"`
}

// CriteriaBlock holds the acceptance checklist selected for one story.
type CriteriaBlock struct {
	Story    string   `json:"story" yaml:"story" validate:"required"`
	Criteria []string `json:"criteria" yaml:"criteria" validate:"min=1"`
}

// TechnicalRequirement is one row of the technical requirements table.
type TechnicalRequirement struct {
	Category     string        `json:"category" yaml:"category" validate:"required"`
	Requirement  string        `json:"requirement" yaml:"requirement" validate:"required"`
	Technologies []string      `json:"technologies" yaml:"technologies" validate:"min=1"`
	Priority     StoryPriority `json:"priority" yaml:"priority" validate:"required,oneof=low medium high"`
}

// APISpec is the versioned REST skeleton attached to a feature record.
type APISpec struct {
	Version   string     `json:"version" yaml:"version" validate:"required"`
	BaseURL   string     `json:"base_url" yaml:"base_url" validate:"required"`
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints" validate:"min=1,dive"`
}

// Endpoint describes a single REST endpoint. Request and response are loose
// field-name to type-label mappings; Auth marks endpoints behind login.
type Endpoint struct {
	Path        string            `json:"path" yaml:"path" validate:"required"`
	Method      string            `json:"method" yaml:"method" validate:"required,oneof=GET POST PUT PATCH DELETE"`
	Description string            `json:"description" yaml:"description" validate:"required"`
	Auth        bool              `json:"auth,omitempty" yaml:"auth,omitempty"`
	Request     map[string]string `json:"request,omitempty" yaml:"request,omitempty"`
	Response    map[string]string `json:"response,omitempty" yaml:"response,omitempty"`
}

// DBSchema is the relational schema skeleton attached to a feature record.
type DBSchema struct {
	Database string  `json:"database" yaml:"database" validate:"required"`
	Tables   []Table `json:"tables" yaml:"tables" validate:"min=1,dive"`
}

// Table is one table of the schema skeleton.
type Table struct {
	Name    string   `json:"name" yaml:"name" validate:"required"`
	Columns []Column `json:"columns" yaml:"columns" validate:"min=1,dive"`
}

// Column carries name, type label and optional key markers. ForeignKey holds
// the referenced "table.column" when set.
type Column struct {
	Name       string `json:"name" yaml:"name" validate:"required"`
	Type       string `json:"type" yaml:"type" validate:"required"`
	PrimaryKey bool   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	ForeignKey string `json:"foreign_key,omitempty" yaml:"foreign_key,omitempty"`
	Unique     bool   `json:"unique,omitempty" yaml:"unique,omitempty"`
}

// featureIDPattern matches identifiers of the form feat_YYYYMMDD_NNNN.
var featureIDPattern = regexp.MustCompile(`^feat_\d{8}_\d{4,}$`)

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("feature_id", func(fl validator.FieldLevel) bool {
		return featureIDPattern.MatchString(fl.Field().String())
	})
}

// ValidateStruct performs validation on any struct carrying validate tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}
