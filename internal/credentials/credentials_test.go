package credentials

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearOverlayEnv blanks the recognized environment keys so tests are not
// affected by the surrounding environment.
func clearOverlayEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
}

func TestLoadMissingFileYieldsEmptyMap(t *testing.T) {
	clearOverlayEnv(t)
	fs := afero.NewMemMapFs()

	creds, err := Load(fs, "config/.env")

	require.NoError(t, err)
	assert.Empty(t, creds)
}

func TestLoadParsesKeyValueLines(t *testing.T) {
	clearOverlayEnv(t)
	fs := afero.NewMemMapFs()
	content := "# provider keys\n\nOPENAI_API_KEY=\"sk-from-file\"\nANTHROPIC_API_KEY=sk-ant-file\n"
	require.NoError(t, afero.WriteFile(fs, "config/.env", []byte(content), 0o644))

	creds, err := Load(fs, "config/.env")

	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", creds["OPENAI_API_KEY"], "surrounding quotes are stripped")
	assert.Equal(t, "sk-ant-file", creds["ANTHROPIC_API_KEY"])
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	clearOverlayEnv(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config/.env", []byte("OPENAI_API_KEY=sk-from-file\n"), 0o644))
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	creds, err := Load(fs, "config/.env")

	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", creds["OPENAI_API_KEY"])
}

func TestLoadEnvironmentAppliesWithoutFile(t *testing.T) {
	clearOverlayEnv(t)
	fs := afero.NewMemMapFs()
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env")

	creds, err := Load(fs, "config/.env")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ANTHROPIC_API_KEY": "sk-ant-env"}, creds)
}
