package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unifeed/unifeed-cli/internal/cli"
	"github.com/unifeed/unifeed-cli/pkg/files"
	"github.com/unifeed/unifeed-cli/pkg/models"
)

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update a settings value",
		Long: `Update a value in settings.yaml.

Keys:
  server.url          - feed server base URL
  composer.kind       - default post kind
  composer.visibility - default audience
  composer.max-attachments - attachment count limit

Examples:
  unifeed set server.url https://feed.campus.example
  unifeed set composer.visibility university`,
		Args: cobra.ExactArgs(2),
		RunE: runSet,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	settings, err := files.ReadSettings()
	if err != nil {
		return err
	}

	switch key {
	case "server.url":
		settings.Server.BaseURL = value
	case "composer.kind":
		kind, err := models.ParseKind(value)
		if err != nil {
			return err
		}
		settings.Composer.DefaultKind = kind
	case "composer.visibility":
		visibility, err := models.ParseVisibility(value)
		if err != nil {
			return err
		}
		settings.Composer.DefaultVisibility = visibility
	case "composer.max-attachments":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid attachment limit: %s", value)
		}
		settings.Composer.MaxAttachments = n
	default:
		return fmt.Errorf("unknown settings key: %s", key)
	}

	if err := files.WriteSettings(settings); err != nil {
		return err
	}

	cli.PrintSuccess("updated %s", key)
	return nil
}
