package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devforge/pmagent/internal/generator"
)

// useMemFs swaps the command filesystem for an in-memory one for the
// duration of a test.
func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	memFs := afero.NewMemMapFs()
	previous := appFs
	appFs = memFs
	t.Cleanup(func() { appFs = previous })
	return memFs
}

func executeCommand(t *testing.T, args ...string) error {
	t.Helper()
	viper.Reset()
	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestGenerateRequiresIdeaArgument(t *testing.T) {
	useMemFs(t)

	err := executeCommand(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arg")
}

func TestGenerateEndToEnd(t *testing.T) {
	memFs := useMemFs(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	require.NoError(t, executeCommand(t, "generate", "Task management app"))

	featureStore, err := GetStore()
	require.NoError(t, err)

	summaries, err := featureStore.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	record, err := featureStore.Load(summaries[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "Task management app", record.Specification.Title)
	assert.Equal(t, generator.DefaultTechStack, record.Specification.TechStack)
	assert.Equal(t, "Core Task management app functionality", record.Specification.MVPFeatures[0])
	assert.Equal(t, "Task management app", record.Idea)
	assert.Contains(t, record.UserStories[0].Action, "Task management app")
	assert.Len(t, record.UserStories, 6)
	assert.Len(t, record.TechnicalRequirements, 6)
	assert.Len(t, record.APISpecification.Endpoints, 7)
	assert.Len(t, record.DatabaseSchema.Tables, 2)

	readme, err := afero.ReadFile(memFs, featureStore.ReadmePath(record.ID))
	require.NoError(t, err)
	firstLine := strings.SplitN(string(readme), "\n", 2)[0]
	assert.Equal(t, "# Task management app", firstLine)
}

func TestGenerateSequenceIncreasesAcrossInvocations(t *testing.T) {
	useMemFs(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	require.NoError(t, executeCommand(t, "generate", "First idea"))
	require.NoError(t, executeCommand(t, "generate", "Second idea"))

	featureStore, err := GetStore()
	require.NoError(t, err)
	summaries, err := featureStore.List()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	ids := []string{summaries[0].ID, summaries[1].ID}
	assert.Contains(t, strings.Join(ids, " "), "_0001")
	assert.Contains(t, strings.Join(ids, " "), "_0002")
}

func TestGenerateWithTechStackArgument(t *testing.T) {
	useMemFs(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	require.NoError(t, executeCommand(t, "generate", "Recipe sharing platform", "React, Node.js, PostgreSQL"))

	featureStore, err := GetStore()
	require.NoError(t, err)
	summaries, err := featureStore.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	record, err := featureStore.Load(summaries[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "React, Node.js, PostgreSQL", record.Specification.TechStack)
}

func TestShowAfterGenerate(t *testing.T) {
	useMemFs(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	require.NoError(t, executeCommand(t, "generate", "Task management app"))

	featureStore, err := GetStore()
	require.NoError(t, err)
	summaries, err := featureStore.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	viper.Reset()
	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs([]string{"show", summaries[0].ID})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, b.String(), `"id": "`+summaries[0].ID+`"`)
	assert.Contains(t, b.String(), `"status": "spec_ready"`)
}

func TestListAfterGenerate(t *testing.T) {
	useMemFs(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	require.NoError(t, executeCommand(t, "generate", "Task management app"))

	viper.Reset()
	b := bytes.NewBufferString("")
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs([]string{"list"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, b.String(), "Task management app")
	assert.Contains(t, b.String(), "spec_ready")
}
