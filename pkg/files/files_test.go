package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)
	return dir
}

func TestReadSettingsMissingFileReturnsDefaults(t *testing.T) {
	useTempConfig(t)

	settings, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if settings.Composer.MaxAttachments != 5 {
		t.Errorf("default max attachments = %d, want 5", settings.Composer.MaxAttachments)
	}
	if settings.Composer.DefaultKind != models.KindPost {
		t.Errorf("default kind = %s, want post", settings.Composer.DefaultKind)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	useTempConfig(t)

	settings := models.DefaultSettings()
	settings.Server.BaseURL = "https://feed.campus.example"
	settings.Composer.DefaultVisibility = models.VisibilityUniversity

	if err := WriteSettings(settings); err != nil {
		t.Fatalf("WriteSettings failed: %v", err)
	}

	loaded, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if loaded.Server.BaseURL != "https://feed.campus.example" {
		t.Errorf("base URL = %s", loaded.Server.BaseURL)
	}
	if loaded.Composer.DefaultVisibility != models.VisibilityUniversity {
		t.Errorf("visibility = %s", loaded.Composer.DefaultVisibility)
	}
}

func TestReadSettingsPartialFileKeepsDefaults(t *testing.T) {
	dir := useTempConfig(t)

	partial := "server:\n  base_url: https://only.this\n"
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := ReadSettings()
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if settings.Server.BaseURL != "https://only.this" {
		t.Errorf("base URL = %s", settings.Server.BaseURL)
	}
	if settings.Composer.MaxAttachments != 5 {
		t.Errorf("unset field lost its default: %d", settings.Composer.MaxAttachments)
	}
}

func TestDraftLifecycle(t *testing.T) {
	useTempConfig(t)

	if err := InitConfigStructure(); err != nil {
		t.Fatalf("InitConfigStructure failed: %v", err)
	}

	first := &models.Draft{
		Kind:    models.KindNote,
		Title:   "Lecture 4",
		Text:    "notes about #graphs",
		SavedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	second := &models.Draft{
		Kind:    models.KindPost,
		Text:    "later draft",
		SavedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	if _, err := SaveDraft(first); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if _, err := SaveDraft(second); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	names, err := ListDrafts()
	if err != nil {
		t.Fatalf("ListDrafts failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("drafts = %v, want 2", names)
	}

	latest, name, err := LatestDraft()
	if err != nil {
		t.Fatalf("LatestDraft failed: %v", err)
	}
	if latest.Text != "later draft" {
		t.Errorf("latest draft text = %q", latest.Text)
	}

	if err := DeleteDraft(name); err != nil {
		t.Fatalf("DeleteDraft failed: %v", err)
	}
	names, _ = ListDrafts()
	if len(names) != 1 {
		t.Errorf("drafts after delete = %v, want 1", names)
	}
}

func TestLatestDraftEmpty(t *testing.T) {
	useTempConfig(t)

	d, name, err := LatestDraft()
	if err != nil {
		t.Fatalf("LatestDraft failed: %v", err)
	}
	if d != nil || name != "" {
		t.Errorf("expected no draft, got %v %q", d, name)
	}
}
