package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

// SaveDraft writes a draft to the drafts directory, one yaml file per draft,
// named by save time so ListDrafts sorts naturally.
func SaveDraft(d *models.Draft) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	draftsPath := filepath.Join(dir, DraftsDir)
	if err := os.MkdirAll(draftsPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create drafts directory: %w", err)
	}

	if d.SavedAt.IsZero() {
		d.SavedAt = time.Now()
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to marshal draft: %w", err)
	}

	name := d.SavedAt.Format("20060102-150405") + ".yaml"
	path := filepath.Join(draftsPath, name)
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// ListDrafts returns draft filenames, oldest first.
func ListDrafts() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(dir, DraftsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadDraft loads a draft by filename.
func ReadDraft(name string) (*models.Draft, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, DraftsDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read draft %s: %w", name, err)
	}

	var d models.Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse draft %s: %w", name, err)
	}
	return &d, nil
}

// LatestDraft returns the most recently saved draft and its filename, or nil
// when there are none.
func LatestDraft() (*models.Draft, string, error) {
	names, err := ListDrafts()
	if err != nil || len(names) == 0 {
		return nil, "", err
	}

	name := names[len(names)-1]
	d, err := ReadDraft(name)
	if err != nil {
		return nil, "", err
	}
	return d, name, nil
}

// DeleteDraft removes a draft by filename, e.g. once it has been submitted.
func DeleteDraft(name string) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(dir, DraftsDir, name)); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", name, err)
	}
	return nil
}
