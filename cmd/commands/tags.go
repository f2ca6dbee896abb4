package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/unifeed/unifeed-cli/internal/cli"
	"github.com/unifeed/unifeed-cli/pkg/textscan"
)

var tagsFormat string

// NewTagsCommand creates the tags command
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags [text]",
		Short: "Show the hashtags and mentions a text would carry",
		Long: `Show the hashtags and mentions that would be derived from the given
text, exactly as the composer derives them. Reads stdin when no text argument
is given.

Examples:
  unifeed tags "late night #library session with @sam"
  cat draft.txt | unifeed tags`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTags,
	}

	cmd.Flags().StringVar(&tagsFormat, "format", "text", "Output format: text, json, or yaml")

	return cmd
}

func runTags(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	hashtags := textscan.Hashtags(text)
	mentions := textscan.Mentions(text)

	if tagsFormat != "text" {
		return cli.OutputResults(os.Stdout, tagsFormat, struct {
			Hashtags []string `json:"hashtags" yaml:"hashtags"`
			Mentions []string `json:"mentions" yaml:"mentions"`
		}{hashtags, mentions})
	}

	if len(hashtags) == 0 && len(mentions) == 0 {
		cli.PrintInfo("no hashtags or mentions")
		return nil
	}
	if len(hashtags) > 0 {
		fmt.Println("hashtags: " + formatTags(hashtags))
	}
	if len(mentions) > 0 {
		out := "mentions:"
		for _, m := range mentions {
			out += " @" + m
		}
		fmt.Println(out)
	}
	return nil
}
