// Package app wires configuration, project lookup and the template generator
// into the single mdocs workflow.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tacogips/mdocs/internal/config"
	"github.com/tacogips/mdocs/internal/debug"
	"github.com/tacogips/mdocs/internal/fsys"
	"github.com/tacogips/mdocs/internal/project"
	"github.com/tacogips/mdocs/internal/template/generator"
)

// DotenvFile is read from the working directory for MDOCS_* overrides.
const DotenvFile = ".env"

// GenerateOptions contains options for documentation generation.
type GenerateOptions struct {
	// Dir is the directory to run on. Relative paths are made absolute.
	Dir string
	// ConfigPath is the configuration file. Empty means .mdocs.yaml at the repository base.
	ConfigPath string
	// DotenvPath is the dotenv file read for overrides. Empty disables it.
	DotenvPath string
	// DryRun expands every template without writing files.
	DryRun bool
}

// GenerateResult contains the results of documentation generation.
type GenerateResult struct {
	// Project is the resolved project context.
	Project *project.Context
	// Config is the effective configuration.
	Config *config.Config
	// FilesCreated is the number of new files written.
	FilesCreated int
	// FilesOverwritten is the number of existing files replaced.
	FilesOverwritten int
	// Files contains the destination paths, in processing order.
	Files []string
	// DryRunFiles is populated in dry-run mode.
	DryRunFiles []generator.DryRunFile
}

// Generate expands every template of the project containing opts.Dir.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	dir, err := validateDir(opts.Dir)
	if err != nil {
		return nil, err
	}
	debug.Debug("[app] Generating documentation for %s (dryRun=%v)", dir, opts.DryRun)

	proj, err := project.Resolve(fsys.NewOSFileSystem(config.DefaultIgnoreDirs()), dir)
	if err != nil {
		return nil, explainResolveError(dir, err)
	}

	cfg, err := LoadConfig(proj.Base, opts.ConfigPath, opts.DotenvPath)
	if err != nil {
		return nil, err
	}
	if cfg.Output.Debug && !debug.IsEnabled() {
		debug.SetDebug(true)
	}

	fs, err := newFileSystem(cfg)
	if err != nil {
		return nil, err
	}

	genOpts := generator.GenerateOptions{
		Project:        proj,
		TemplateExt:    cfg.Templates.Extension,
		DefaultExt:     cfg.Templates.DefaultExtension,
		MaxInlineDepth: cfg.Templates.MaxInlineDepth,
		EditNoteRepeat: cfg.Templates.EditNoteRepeat,
	}

	gen := generator.NewGenerator(fs)
	var genResult *generator.GenerateResult
	if opts.DryRun {
		genResult, err = gen.DryRun(ctx, genOpts)
	} else {
		genResult, err = gen.Generate(ctx, genOpts)
	}
	if err != nil {
		return nil, NewAppError(GenerationFailed, "generation failed", err)
	}

	return &GenerateResult{
		Project:          proj,
		Config:           cfg,
		FilesCreated:     genResult.FilesCreated,
		FilesOverwritten: genResult.FilesOverwritten,
		Files:            genResult.Files,
		DryRunFiles:      genResult.DryRunFiles,
	}, nil
}

// LoadConfig loads the configuration for a repository base: the YAML file
// (configPath, or .mdocs.yaml at base) followed by dotenv and environment
// overrides. A missing default file yields the defaults; a missing explicit
// file is an error.
func LoadConfig(base, configPath, dotenvPath string) (*config.Config, error) {
	loader := config.NewLoader()

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = loader.Load(configPath)
	} else {
		cfg, err = loader.LoadOrDefault(config.DefaultConfigPath(base))
	}
	if err != nil {
		return nil, NewAppError(ConfigLoadFailed, "failed to load configuration", err)
	}

	env, err := config.ReadEnv(dotenvPath)
	if err != nil {
		return nil, NewAppError(ConfigLoadFailed, "failed to read environment", err)
	}
	if err := config.ApplyEnv(cfg, env); err != nil {
		return nil, NewAppError(ConfigLoadFailed, "invalid environment override", err)
	}

	debug.DebugValue("[app] templates.extension", cfg.Templates.Extension)
	debug.DebugValue("[app] templates.ignore_dirs", cfg.Templates.IgnoreDirs)
	debug.DebugValue("[app] cache", fmt.Sprintf("enabled=%v size=%d", cfg.Cache.Enabled, cfg.Cache.Size))
	return cfg, nil
}

// newFileSystem builds the filesystem the generator runs on.
func newFileSystem(cfg *config.Config) (fsys.FileSystem, error) {
	osfs := fsys.NewOSFileSystem(cfg.Templates.IgnoreDirs)
	if !cfg.Cache.Enabled || cfg.Cache.Size == 0 {
		return osfs, nil
	}
	cached, err := fsys.NewCachedFileSystem(osfs, cfg.Cache.Size)
	if err != nil {
		return nil, NewAppError(ConfigLoadFailed, "failed to create file cache", err)
	}
	return cached, nil
}

// validateDir makes dir absolute and checks that it is a directory.
func validateDir(dir string) (string, error) {
	if dir == "" {
		return "", NewValidationError("directory cannot be empty", nil)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", NewAppError(InvalidDirectory, "failed to make directory absolute", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", NewAppError(InvalidDirectory, fmt.Sprintf("cannot access %s", abs), err)
	}
	if !info.IsDir() {
		return "", NewAppError(InvalidDirectory, fmt.Sprintf("%s is not a directory", abs), nil)
	}
	return abs, nil
}

// explainResolveError turns a missing manifest into the more useful "no
// templates" error when dir holds no template either.
func explainResolveError(dir string, err error) error {
	var perr *project.ProjectError
	if errors.As(err, &perr) && perr.Type == project.NoManifest {
		found, findErr := fsys.NewOSFileSystem(config.DefaultIgnoreDirs()).
			FindFiles("*"+config.DefaultTemplateExtension, dir)
		if findErr == nil && len(found) == 0 {
			return NewAppError(ProjectResolveFailed, "nothing to generate",
				generator.NoTemplatesError(dir, config.DefaultTemplateExtension))
		}
	}
	return NewAppError(ProjectResolveFailed, "failed to resolve project", err)
}
