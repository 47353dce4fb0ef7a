// Package credentials loads provider API keys from a KEY=VALUE file with an
// environment overlay. The file is optional: a missing file yields an empty
// map, never an error.
package credentials

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// DefaultPath is the conventional location of the credential file.
const DefaultPath = "config/.env"

// envOverlayKeys are the environment variables that, when set, override the
// file-provided values.
var envOverlayKeys = []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY"}

// Load reads the credential file at path and overlays the recognized
// environment variables. Blank lines and comments are ignored and quoted
// values are unquoted. A malformed file is reported; an absent one is not.
func Load(fs afero.Fs, path string) (map[string]string, error) {
	creds := map[string]string{}

	f, err := fs.Open(path)
	if err == nil {
		parsed, parseErr := godotenv.Parse(f)
		_ = f.Close()
		if parseErr != nil {
			return nil, fmt.Errorf("parse credential file %s: %w", path, parseErr)
		}
		creds = parsed
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open credential file %s: %w", path, err)
	}

	for _, key := range envOverlayKeys {
		if val := os.Getenv(key); val != "" {
			creds[key] = val
		}
	}
	return creds, nil
}
