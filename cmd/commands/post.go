package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/unifeed/unifeed-cli/internal/cli"
	"github.com/unifeed/unifeed-cli/pkg/attachments"
	"github.com/unifeed/unifeed-cli/pkg/composer"
	"github.com/unifeed/unifeed-cli/pkg/feed"
	"github.com/unifeed/unifeed-cli/pkg/logging"
	"github.com/unifeed/unifeed-cli/pkg/models"
)

var (
	postKind       string
	postTitle      string
	postVisibility string
	postAttach     []string
)

// NewPostCommand creates the post command
func NewPostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post <text>",
		Short: "Compose and publish a post without opening the TUI",
		Long: `Compose and publish a post in one shot.

Hashtags are derived from the text; attachments are validated against the
kind's rules before anything is sent.

Examples:
  # A quick public post
  unifeed post "survived the #algorithms midterm"

  # A question with a title, visible to your university
  unifeed post "anyone have the lab 2 starter?" --kind question \
    --title "Lab 2 starter code" --visibility university

  # A photo post with attachments
  unifeed post "study group pics #finals" --kind photo \
    --attach group.jpg --attach whiteboard.png`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateKind(postKind); err != nil {
				return err
			}
			if err := cli.ValidateVisibility(postVisibility); err != nil {
				return err
			}
			for _, path := range postAttach {
				if err := cli.ValidateAttachmentPath(path); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: runPost,
	}

	cmd.Flags().StringVarP(&postKind, "kind", "k", "post", "Post kind (post, note, question, photo)")
	cmd.Flags().StringVarP(&postTitle, "title", "t", "", "Title (notes and questions only)")
	cmd.Flags().StringVarP(&postVisibility, "visibility", "v", "public", "Audience (public, followers, university, private)")
	cmd.Flags().StringSliceVarP(&postAttach, "attach", "a", nil, "File to attach (repeatable)")

	return cmd
}

func runPost(cmd *cobra.Command, args []string) error {
	kind, _ := models.ParseKind(postKind)
	visibility, _ := models.ParseVisibility(postVisibility)

	ctx := cli.NewCommandContext(logging.NewLogger())

	comp := composer.New(kind, visibility, attachments.LimitsFromSettings(ctx.Settings.Composer))
	comp.Open(kind)
	text := args[0]
	comp.SetText(text, len([]rune(text)))
	comp.SetTitle(postTitle)

	for _, err := range comp.AttachAll(postAttach) {
		if rej, ok := attachments.AsRejection(err); ok {
			cli.PrintWarning("skipped %s", rej.Error())
			continue
		}
		return err
	}

	if tags := comp.Hashtags(); len(tags) > 0 {
		cli.PrintInfo("hashtags: %s", formatTags(tags))
	}

	callCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(ctx.Settings.Server.TimeoutSeconds)*time.Second)
	defer cancel()

	resp, err := comp.Submit(callCtx, ctx.FeedClient())
	if err != nil {
		if errors.Is(err, composer.ErrEmptyPost) {
			return err
		}
		if apiErr, ok := feed.AsAPIError(err); ok {
			return fmt.Errorf("server rejected the post: %s", apiErr.UserMessage())
		}
		return err
	}

	cli.PrintSuccess("published post %s", resp.ID)
	return nil
}

func formatTags(tags []string) string {
	out := ""
	for i, tag := range tags {
		if i > 0 {
			out += " "
		}
		out += "#" + tag
	}
	return out
}
