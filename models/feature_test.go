package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() *FeatureRecord {
	return &FeatureRecord{
		ID:   "feat_20260827_0001",
		Idea: "Task management app",
		Specification: SpecificationBlock{
			Title:       "Task management app",
			Description: "A comprehensive solution for Task management app",
			Type:        "web_application",
			TechStack:   "Modern web stack (TBD by Dev team)",
			MVPFeatures: []string{"Core Task management app functionality"},
			V2Features:  []string{"Advanced analytics"},
		},
		UserStories: []Story{
			{ID: "US-001", Role: "As a user", Action: "I want to access it", Benefit: "So that", Priority: PriorityHigh, StoryPoints: 3},
		},
		AcceptanceCriteria: map[string]CriteriaBlock{
			"US-001": {Story: "I want to access it", Criteria: []string{"Feature is accessible from main navigation"}},
		},
		TechnicalRequirements: []TechnicalRequirement{
			{Category: "Backend", Requirement: "RESTful API", Technologies: []string{"Go"}, Priority: PriorityHigh},
		},
		APISpecification: APISpec{
			Version: "v1",
			BaseURL: "/api/v1",
			Endpoints: []Endpoint{
				{Path: "/items", Method: "GET", Description: "List all items", Auth: true},
			},
		},
		DatabaseSchema: DBSchema{
			Database: "PostgreSQL",
			Tables: []Table{
				{Name: "users", Columns: []Column{{Name: "id", Type: "UUID", PrimaryKey: true}}},
			},
		},
		Status:    StatusSpecReady,
		CreatedAt: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		PMAgent:   "v1.0",
	}
}

func TestValidateStructAcceptsCompleteRecord(t *testing.T) {
	require.NoError(t, ValidateStruct(validRecord()))
}

func TestValidateStructRejectsBadIdentifier(t *testing.T) {
	for _, id := range []string{"", "feat_0001", "feature_20260827_0001", "feat_2026_0001"} {
		record := validRecord()
		record.ID = id
		err := ValidateStruct(record)
		require.Error(t, err, "id %q should be rejected", id)
		assert.Contains(t, err.Error(), "ID")
	}
}

func TestValidateStructRejectsUnknownStatus(t *testing.T) {
	record := validRecord()
	record.Status = "in_review"
	require.Error(t, ValidateStruct(record))
}

func TestValidateStructRejectsUnknownFeatureType(t *testing.T) {
	record := validRecord()
	record.Specification.Type = "desktop_app"
	require.Error(t, ValidateStruct(record))
}

func TestValidateStructRejectsBadEndpointMethod(t *testing.T) {
	record := validRecord()
	record.APISpecification.Endpoints[0].Method = "FETCH"
	require.Error(t, ValidateStruct(record))
}
