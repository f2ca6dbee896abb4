package models

// Settings represents the application configuration
type Settings struct {
	Server   ServerSettings   `yaml:"server"`
	Composer ComposerSettings `yaml:"composer"`
	UI       UISettings       `yaml:"ui"`
}

// ServerSettings controls how the feed API is reached
type ServerSettings struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ComposerSettings controls authoring defaults and attachment limits
type ComposerSettings struct {
	DefaultKind       Kind       `yaml:"default_kind"`
	DefaultVisibility Visibility `yaml:"default_visibility"`
	MaxAttachments    int        `yaml:"max_attachments"`
	MaxImageBytes     int64      `yaml:"max_image_bytes"`
	MaxVideoBytes     int64      `yaml:"max_video_bytes"`
	MaxDocumentBytes  int64      `yaml:"max_document_bytes"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowAttachmentPanel bool `yaml:"show_attachment_panel"`
	CopyPostIDOnSubmit  bool `yaml:"copy_post_id_on_submit"`
	OfferDraftOnQuit    bool `yaml:"offer_draft_on_quit"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Server: ServerSettings{
			BaseURL:        "http://localhost:8080",
			TimeoutSeconds: 30,
		},
		Composer: ComposerSettings{
			DefaultKind:       KindPost,
			DefaultVisibility: VisibilityPublic,
			MaxAttachments:    5,
			MaxImageBytes:     10 << 20,
			MaxVideoBytes:     50 << 20,
			MaxDocumentBytes:  20 << 20,
		},
		UI: UISettings{
			ShowAttachmentPanel: true,
			CopyPostIDOnSubmit:  true,
			OfferDraftOnQuit:    true,
		},
	}
}
