package config

import "path/filepath"

// Default values for Config fields.
const (
	DefaultTemplateExtension = ".template.md"
	DefaultInlineExtension   = ".md"
	DefaultMaxInlineDepth    = 16
	DefaultEditNoteRepeat    = 5
	DefaultCacheSize         = 512

	// FileName is the name of the optional configuration file at the repository base.
	FileName = ".mdocs.yaml"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Templates: TemplateConfig{
			Extension:        DefaultTemplateExtension,
			DefaultExtension: DefaultInlineExtension,
			IgnoreDirs:       DefaultIgnoreDirs(),
			MaxInlineDepth:   DefaultMaxInlineDepth,
			EditNoteRepeat:   DefaultEditNoteRepeat,
		},
		Output: OutputConfig{
			Color: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    DefaultCacheSize,
		},
	}
}

// DefaultIgnoreDirs returns the directory names never searched for templates.
func DefaultIgnoreDirs() []string {
	return []string{
		"node_modules",
		".git",
	}
}

// DefaultConfigPath returns the configuration file path for a repository base.
func DefaultConfigPath(baseDir string) string {
	return filepath.Join(baseDir, FileName)
}
