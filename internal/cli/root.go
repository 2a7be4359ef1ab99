package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tacogips/mdocs/internal/app"
	"github.com/tacogips/mdocs/internal/build"
	"github.com/tacogips/mdocs/internal/debug"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// Generate flags
var (
	generateConfig string
	generateDryRun bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mdocs [directory]",
	Short: "Generate markdown documentation from templates",
	Long: `mdocs expands every *.template.md file of a project into the markdown
file next to it.

Templates use line directives:
  !INLINE <path> [args...]   include a file (recursively expanded)
  !VAR <name> <value>        declare a variable; reference it with !VAR <name>
  !MENU                      insert the navigation menu
  !OUTPUT <file>             write to <file> instead of <name>.md
  !MENU_ORDER, !MENU_TITLE, !MENU_LINK, !MENU_SECTION, !MENU_INDENT, !MENU_SKIP
                             describe the template's menu entry

The directory defaults to the current working directory. The project is
located through the nearest package.json, go.mod, workspace manifest and .git.

Examples:
  mdocs
  mdocs ./packages/my-lib
  mdocs --dry-run --debug`,
	Args:          cobra.MaximumNArgs(1),
	Version:       build.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
	RunE: runGenerate,
}

// Execute runs the root command.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	rootCmd.Flags().StringVarP(&generateConfig, FlagConfig, "c", "", DescConfig)
	rootCmd.Flags().BoolVar(&generateDryRun, FlagDryRun, false, DescDryRun)

	rootCmd.SetVersionTemplate(versionTemplate())
}

// printError prints an error message to stderr, telling usage errors apart
// from internal ones.
func printError(err error) {
	label := "Error"
	if app.IsUsageError(err) {
		label = "Usage error"
	}
	printErrorMsg(fmt.Sprintf("%s: %v", label, err))
}
