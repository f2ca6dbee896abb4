package files

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

const (
	// ConfigDirEnv overrides the config dir location, mainly for tests.
	ConfigDirEnv = "UNIFEED_CONFIG_DIR"

	ConfigDirName = ".unifeed"
	SettingsFile  = "settings.yaml"
	DraftsDir     = "drafts"
	LogFile       = "unifeed.log"
)

// ConfigDir returns the unifeed config directory: $UNIFEED_CONFIG_DIR if set,
// otherwise ~/.unifeed.
func ConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// InitConfigStructure creates the config directory tree.
func InitConfigStructure() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	for _, d := range []string{dir, filepath.Join(dir, DraftsDir)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return nil
}

// LogPath returns the path of the debug log file.
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFile), nil
}

// ReadSettings loads settings.yaml, returning defaults when the file does not
// exist yet.
func ReadSettings() (*models.Settings, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, SettingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// WriteSettings saves settings.yaml atomically (write to a temp file, then
// rename into place).
func WriteSettings(settings *models.Settings) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return writeAtomic(filepath.Join(dir, SettingsFile), data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save %s: %w", filepath.Base(path), err)
	}
	return nil
}
