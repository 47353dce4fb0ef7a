package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/devforge/pmagent/models"
)

const (
	idPrefix       = "feat_"
	dataFileBase   = "feature_spec"
	readmeFileName = "README.md"

	formatJSON = "json"
	formatYAML = "yaml"

	// maxAllocateRetries bounds the reservation loop. Each retry means
	// another caller reserved the candidate directory first.
	maxAllocateRetries = 1000
)

// FileFeatureStore implements FeatureStore on an afero filesystem. The
// artifact root is created lazily; feature directories are reserved with a
// plain Mkdir so concurrent allocations cannot hand out the same identifier.
type FileFeatureStore struct {
	fs     afero.Fs
	root   string
	format string
}

// NewFileFeatureStore creates a store rooted at root. Format selects the
// structured data file encoding, "json" (default) or "yaml".
func NewFileFeatureStore(fs afero.Fs, root, format string) (*FileFeatureStore, error) {
	if format == "" {
		format = formatJSON
	}
	format = strings.ToLower(format)
	if format != formatJSON && format != formatYAML {
		return nil, fmt.Errorf("unsupported data format: %s (supported: json, yaml)", format)
	}
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact root %s: %w", root, err)
	}
	return &FileFeatureStore{fs: fs, root: root, format: format}, nil
}

// Dir implements FeatureStore.
func (s *FileFeatureStore) Dir(id string) string {
	return filepath.Join(s.root, id)
}

// SpecPath returns the path of the structured data file for an identifier.
func (s *FileFeatureStore) SpecPath(id string) string {
	return filepath.Join(s.root, id, dataFileBase+"."+s.format)
}

// ReadmePath returns the path of the Markdown summary for an identifier.
func (s *FileFeatureStore) ReadmePath(id string) string {
	return filepath.Join(s.root, id, readmeFileName)
}

// AllocateID implements FeatureStore. The starting sequence number is one
// more than the count of existing feature directories — all of them, not
// just today's, so numbering never resets. Reservation is the Mkdir itself:
// if the directory already exists the next sequence number is tried.
func (s *FileFeatureStore) AllocateID(now time.Time) (string, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return "", fmt.Errorf("read artifact root %s: %w", s.root, err)
	}
	seq := 1
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), idPrefix) {
			seq++
		}
	}

	date := now.Format("20060102")
	for attempt := 0; attempt < maxAllocateRetries; attempt++ {
		id := fmt.Sprintf("%s%s_%04d", idPrefix, date, seq)
		err := s.fs.Mkdir(s.Dir(id), 0o755)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("reserve feature directory %s: %w", s.Dir(id), err)
		}
		seq++
	}
	return "", fmt.Errorf("could not reserve a feature identifier under %s after %d attempts", s.root, maxAllocateRetries)
}

// Save implements FeatureStore. The feature directory is created if the
// identifier was not reserved through AllocateID (idempotent either way).
// Both files are written through a temp file and rename.
func (s *FileFeatureStore) Save(record *models.FeatureRecord) error {
	if err := models.ValidateStruct(record); err != nil {
		return fmt.Errorf("validate feature record: %w", err)
	}

	dir := s.Dir(record.ID)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create feature directory %s: %w", dir, err)
	}

	data, err := s.marshal(record)
	if err != nil {
		return err
	}
	if err := s.writeFileAtomic(s.SpecPath(record.ID), data); err != nil {
		return fmt.Errorf("write %s: %w", s.SpecPath(record.ID), err)
	}

	readme := renderMarkdown(record)
	if err := s.writeFileAtomic(s.ReadmePath(record.ID), []byte(readme)); err != nil {
		return fmt.Errorf("write %s: %w", s.ReadmePath(record.ID), err)
	}
	return nil
}

// Load implements FeatureStore.
func (s *FileFeatureStore) Load(id string) (*models.FeatureRecord, error) {
	data, err := afero.ReadFile(s.fs, s.SpecPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("feature not found: %s", id)
		}
		return nil, fmt.Errorf("read %s: %w", s.SpecPath(id), err)
	}

	var record models.FeatureRecord
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", s.SpecPath(id), err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", s.SpecPath(id), err)
		}
	}
	return &record, nil
}

// List implements FeatureStore. Directories that do not hold a readable
// record are skipped rather than failing the whole listing.
func (s *FileFeatureStore) List() ([]FeatureSummary, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read artifact root %s: %w", s.root, err)
	}

	var summaries []FeatureSummary
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), idPrefix) {
			continue
		}
		record, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		summaries = append(summaries, FeatureSummary{
			ID:        record.ID,
			Title:     record.Specification.Title,
			Status:    record.Status,
			CreatedAt: record.CreatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (s *FileFeatureStore) marshal(record *models.FeatureRecord) ([]byte, error) {
	switch s.format {
	case formatYAML:
		data, err := yaml.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("marshal feature record to yaml: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal feature record to json: %w", err)
		}
		return data, nil
	}
}

func (s *FileFeatureStore) writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return err
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}
