package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/unifeed/unifeed-cli/cmd/commands"
	clihelpers "github.com/unifeed/unifeed-cli/internal/cli"
	"github.com/unifeed/unifeed-cli/pkg/files"
	"github.com/unifeed/unifeed-cli/pkg/logging"
	"github.com/unifeed/unifeed-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	flagQuiet   bool
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "unifeed",
	Short: "Terminal composer for your campus feed",
	Long:  `Unifeed is a terminal client for composing posts, notes, questions and photo posts for a campus feed. Running it without a subcommand opens the interactive composer.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		clihelpers.SetQuiet(flagQuiet)
		clihelpers.SetNoColor(flagNoColor)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := files.InitConfigStructure(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to prepare config directory: %v\n", err)
			os.Exit(1)
		}

		logPath, _ := files.LogPath()
		logger := logging.NewFileLogger(logPath)
		ctx := clihelpers.NewCommandContext(logger)

		app := tui.NewApp(ctx.Settings, ctx.FeedClient(), logger)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to start the terminal user interface: %v\n", err)
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("unifeed %s\n", version)
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		commands.NewPostCommand(),
		commands.NewTagsCommand(),
		commands.NewDraftsCommand(),
		commands.NewSetCommand(),
		versionCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
