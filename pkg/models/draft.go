package models

import "time"

// Draft is a snapshot of unsubmitted composer content, stored as a plain yaml
// file so a quit session can be resumed later. Attachments are kept as paths;
// they are restaged (and revalidated) when the draft is restored.
type Draft struct {
	Kind        Kind       `yaml:"kind"`
	Visibility  Visibility `yaml:"visibility"`
	Title       string     `yaml:"title,omitempty"`
	Text        string     `yaml:"text"`
	Attachments []string   `yaml:"attachments,omitempty"`
	SavedAt     time.Time  `yaml:"saved_at"`
}

// Empty reports whether the draft carries no content worth saving.
func (d *Draft) Empty() bool {
	return d.Text == "" && d.Title == "" && len(d.Attachments) == 0
}
