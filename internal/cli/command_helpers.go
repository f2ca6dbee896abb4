package cli

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/unifeed/unifeed-cli/pkg/config"
	"github.com/unifeed/unifeed-cli/pkg/feed"
	"github.com/unifeed/unifeed-cli/pkg/files"
	"github.com/unifeed/unifeed-cli/pkg/models"
)

// CommandContext bundles the settings, environment and feed client shared by
// the commands and the TUI launcher.
type CommandContext struct {
	Settings *models.Settings
	Logger   *logrus.Logger
	client   *feed.Client
}

// NewCommandContext loads .env files and settings. Settings fall back to
// defaults when the config file is missing or unreadable.
func NewCommandContext(logger *logrus.Logger) *CommandContext {
	config.LoadEnv(logger)

	settings, err := files.ReadSettings()
	if err != nil {
		if logger != nil {
			logger.WithError(err).Warn("Using default settings")
		}
		settings = models.DefaultSettings()
	}

	return &CommandContext{
		Settings: settings,
		Logger:   logger,
	}
}

// ServerURL resolves the feed server base URL: environment override first,
// then the settings file.
func (c *CommandContext) ServerURL() string {
	return config.GetEnv(config.EnvServerURL, c.Settings.Server.BaseURL)
}

// FeedClient returns the shared feed API client, building it on first use.
func (c *CommandContext) FeedClient() *feed.Client {
	if c.client == nil {
		c.client = feed.NewClient(feed.Config{
			BaseURL: c.ServerURL(),
			Token:   config.GetEnv(config.EnvToken, ""),
			Timeout: time.Duration(c.Settings.Server.TimeoutSeconds) * time.Second,
			Logger:  c.Logger,
		})
	}
	return c.client
}
