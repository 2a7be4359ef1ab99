package config

// Config represents the mdocs configuration.
// It is read from .mdocs.yaml at the repository base; every field is optional.
type Config struct {
	// Templates configuration for template discovery and expansion.
	Templates TemplateConfig `yaml:"templates"`
	// Output configuration for display and logging.
	Output OutputConfig `yaml:"output"`
	// Cache configuration for the filesystem read cache.
	Cache CacheConfig `yaml:"cache"`
}

// TemplateConfig represents template processing settings.
type TemplateConfig struct {
	// Extension is the suffix identifying template files.
	Extension string `yaml:"extension"`
	// DefaultExtension is appended to !INLINE paths that have no extension.
	DefaultExtension string `yaml:"default_extension"`
	// IgnoreDirs are directory names skipped during discovery and bare-filename lookup.
	IgnoreDirs []string `yaml:"ignore_dirs"`
	// MaxInlineDepth is the maximum nested !INLINE depth.
	MaxInlineDepth int `yaml:"max_inline_depth"`
	// EditNoteRepeat is how many times the warning block repeats in the edit note.
	EditNoteRepeat int `yaml:"edit_note_repeat"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `yaml:"color"`
	// Quiet suppresses non-error output.
	Quiet bool `yaml:"quiet"`
	// Debug enables debug logging.
	Debug bool `yaml:"debug"`
}

// CacheConfig represents file cache settings.
type CacheConfig struct {
	// Enabled indicates whether file reads are cached during a run.
	Enabled bool `yaml:"enabled"`
	// Size is the maximum number of cached entries.
	Size int `yaml:"size"`
}

// partialConfig mirrors Config with pointer fields so that keys absent from the
// file can be told apart from keys explicitly set to their zero value.
type partialConfig struct {
	Templates *struct {
		Extension        *string  `yaml:"extension"`
		DefaultExtension *string  `yaml:"default_extension"`
		IgnoreDirs       []string `yaml:"ignore_dirs"`
		MaxInlineDepth   *int     `yaml:"max_inline_depth"`
		EditNoteRepeat   *int     `yaml:"edit_note_repeat"`
	} `yaml:"templates"`
	Output *struct {
		Color *bool `yaml:"color"`
		Quiet *bool `yaml:"quiet"`
		Debug *bool `yaml:"debug"`
	} `yaml:"output"`
	Cache *struct {
		Enabled *bool `yaml:"enabled"`
		Size    *int  `yaml:"size"`
	} `yaml:"cache"`
}
