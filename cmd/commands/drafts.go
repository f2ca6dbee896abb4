package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/unifeed/unifeed-cli/internal/cli"
	"github.com/unifeed/unifeed-cli/pkg/files"
)

// NewDraftsCommand creates the drafts command
func NewDraftsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "List saved drafts",
		Long:  `List the drafts saved from previous composing sessions, oldest first.`,
		Args:  cobra.NoArgs,
		RunE:  runDrafts,
	}

	return cmd
}

func runDrafts(cmd *cobra.Command, args []string) error {
	names, err := files.ListDrafts()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		cli.PrintInfo("no saved drafts")
		return nil
	}

	table := cli.NewTableFormatter(os.Stdout)
	table.Header("SAVED", "KIND", "TITLE", "TEXT")
	for _, name := range names {
		d, err := files.ReadDraft(name)
		if err != nil {
			cli.PrintWarning("skipping unreadable draft %s: %v", name, err)
			continue
		}
		table.Row(
			d.SavedAt.Format("2006-01-02 15:04"),
			string(d.Kind),
			truncate(d.Title, 24),
			truncate(d.Text, 48),
		)
	}
	table.Flush()
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
