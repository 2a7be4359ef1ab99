package cli

import (
	"fmt"
	"runtime"

	"github.com/tacogips/mdocs/internal/build"
)

// VersionInfo contains version information
type VersionInfo struct {
	Version   string
	GoVersion string
	OS        string
	Arch      string
}

func currentVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   build.Version(),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// versionTemplate renders the --version output.
func versionTemplate() string {
	info := currentVersionInfo()
	return fmt.Sprintf("mdocs version %s\nBuilt with: %s\nOS/Arch: %s/%s\n",
		info.Version, info.GoVersion, info.OS, info.Arch)
}
