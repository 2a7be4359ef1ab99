package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig  = "config"
	FlagDryRun  = "dry-run"
	FlagNoColor = "no-color"
	FlagQuiet   = "quiet"
	FlagDebug   = "debug"

	// Flag descriptions
	DescConfig  = "Path to config file (default: <base>/.mdocs.yaml)"
	DescDryRun  = "Expand templates and list outputs without writing"
	DescNoColor = "Disable colored output"
	DescQuiet   = "Suppress non-error output"
	DescDebug   = "Enable debug logging"
)
