package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tacogips/mdocs/internal/app"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	dir, err := targetDir(args)
	if err != nil {
		return err
	}

	result, err := app.Generate(cmd.Context(), app.GenerateOptions{
		Dir:        dir,
		ConfigPath: generateConfig,
		DotenvPath: app.DotenvFile,
		DryRun:     generateDryRun,
	})
	if err != nil {
		return err
	}

	if result.Config.Output.Quiet {
		globalQuiet = true
	}
	if !result.Config.Output.Color {
		globalNoColor = true
	}

	base := result.Project.Base
	if generateDryRun {
		printHeader("Dry run")
		for _, f := range result.DryRunFiles {
			msg := fmt.Sprintf("%s (from %s, %s)",
				relativePath(base, f.Path), f.Source, formatBytes(int64(len(f.Content))))
			if f.Exists {
				printWarning("overwrite " + msg)
			} else {
				printProgress("create " + msg)
			}
		}
		printInfo(fmt.Sprintf("%d file(s) would be written", len(result.DryRunFiles)))
		return nil
	}

	for _, f := range result.Files {
		printProgress(relativePath(base, f))
	}
	printSuccess(fmt.Sprintf("Generated %d file(s) (%d created, %d overwritten)",
		len(result.Files), result.FilesCreated, result.FilesOverwritten))
	return nil
}

// targetDir returns the directory argument, defaulting to the working directory.
func targetDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", app.NewAppError(app.InvalidDirectory, "failed to determine working directory", err)
	}
	return wd, nil
}
