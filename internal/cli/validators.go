package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

// ValidateKind validates a kind flag value
func ValidateKind(s string) error {
	_, err := models.ParseKind(s)
	return err
}

// ValidateVisibility validates a visibility flag value
func ValidateVisibility(s string) error {
	_, err := models.ParseVisibility(s)
	return err
}

// ValidateAttachmentPath validates that an attachment path exists and is a file
func ValidateAttachmentPath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("attachment does not exist: %s", path)
		}
		return fmt.Errorf("error accessing attachment: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("attachment is a directory, expected file: %s", path)
	}

	return nil
}
