package project

import (
	"encoding/json"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// Manifest file names recognised as package or workspace descriptors.
const (
	NpmManifest   = "package.json"
	GoModManifest = "go.mod"
	GoWorkFile    = "go.work"
	GitDir        = ".git"
)

// ManifestKind identifies the ecosystem a manifest belongs to.
type ManifestKind string

const (
	KindNpm   ManifestKind = "npm"
	KindGoMod ManifestKind = "gomod"
)

// PackageInfo is the nearest enclosing publishable unit.
type PackageInfo struct {
	// Name is the published package name (npm name or Go module path).
	Name string
	// Private marks packages that are not published; imports are never rewritten for them.
	Private bool
	// Dir is the absolute directory holding the manifest.
	Dir string
	// ManifestPath is the absolute manifest path.
	ManifestPath string
	// Kind is the manifest ecosystem.
	Kind ManifestKind
}

// MonorepoInfo is the nearest ancestor manifest declaring multiple sub-packages.
type MonorepoInfo struct {
	Name         string
	Dir          string
	ManifestPath string
	// Members are the workspace globs (npm) or use directories (go.work).
	Members []string
	Kind    ManifestKind
}

type packageJSON struct {
	Name       string          `json:"name"`
	Private    bool            `json:"private"`
	Workspaces json.RawMessage `json:"workspaces"`
}

// workspaces decodes both `"workspaces": [...]` and `"workspaces": {"packages": [...]}`.
func (p *packageJSON) workspaces() ([]string, bool) {
	if len(p.Workspaces) == 0 || string(p.Workspaces) == "null" {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal(p.Workspaces, &list); err == nil {
		return list, true
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(p.Workspaces, &obj); err == nil {
		return obj.Packages, true
	}
	return nil, false
}

func parsePackageJSON(path, content string) (*packageJSON, error) {
	var pkg packageJSON
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil, newProjectError(ManifestInvalid, "invalid package.json", path, err)
	}
	return &pkg, nil
}

func parseGoMod(path, content string) (*PackageInfo, error) {
	f, err := modfile.ParseLax(path, []byte(content), nil)
	if err != nil {
		return nil, newProjectError(ManifestInvalid, "invalid go.mod", path, err)
	}
	if f.Module == nil {
		return nil, newProjectError(ManifestInvalid, "go.mod has no module directive", path, nil)
	}
	return &PackageInfo{
		Name:         f.Module.Mod.Path,
		Dir:          filepath.Dir(path),
		ManifestPath: path,
		Kind:         KindGoMod,
	}, nil
}

func parseGoWork(path, content string) (*MonorepoInfo, error) {
	f, err := modfile.ParseWork(path, []byte(content), nil)
	if err != nil {
		return nil, newProjectError(ManifestInvalid, "invalid go.work", path, err)
	}
	info := &MonorepoInfo{
		Name:         filepath.Base(filepath.Dir(path)),
		Dir:          filepath.Dir(path),
		ManifestPath: path,
		Kind:         KindGoMod,
	}
	for _, use := range f.Use {
		info.Members = append(info.Members, use.Path)
	}
	return info, nil
}
