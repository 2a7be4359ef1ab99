// Package project locates the manifests and roots that give template paths
// their meaning: the owning package, an enclosing monorepo (workspace root),
// and the version-control root.
//
// The package and monorepo are resolved independently. The monorepo wins when
// choosing the base directory for discovery and links; the package wins when
// rewriting import paths.
package project

import (
	"path/filepath"

	"github.com/tacogips/mdocs/internal/debug"
	"github.com/tacogips/mdocs/internal/fsys"
)

// Context is everything path resolution needs to know about the project.
type Context struct {
	// Dir is the absolute directory mdocs was run on.
	Dir string
	// Package is the nearest package manifest above Dir (nil if none).
	Package *PackageInfo
	// Monorepo is the nearest workspace-root manifest above Dir (nil if none).
	Monorepo *MonorepoInfo
	// RepoRoot is the version-control root; it anchors "/"-prefixed inline paths.
	RepoRoot string
	// Base is the directory templates are discovered under and linked relative to.
	Base string
}

// Resolve builds the project context for dir.
// It fails with a NoManifest error when neither a package nor a monorepo manifest exists.
func Resolve(fs fsys.FileSystem, dir string) (*Context, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, newProjectError(LookupFailed, "failed to make directory absolute", dir, err)
	}

	pkg, err := FindPackage(fs, dir)
	if err != nil {
		return nil, err
	}
	mono, err := FindMonorepo(fs, dir)
	if err != nil {
		return nil, err
	}
	if pkg == nil && mono == nil {
		return nil, newProjectError(NoManifest,
			"no package.json, go.mod or workspace manifest found in or above directory", dir, nil)
	}

	ctx := &Context{
		Dir:      dir,
		Package:  pkg,
		Monorepo: mono,
	}
	if mono != nil {
		ctx.Base = mono.Dir
	} else {
		ctx.Base = pkg.Dir
	}

	root, err := FindRepoRoot(fs, dir)
	if err != nil {
		return nil, err
	}
	if root == "" {
		debug.Debug("[project] No %s directory found, using %s as repository root", GitDir, ctx.Base)
		root = ctx.Base
	}
	ctx.RepoRoot = root

	debug.Debug("[project] Context: base=%s repoRoot=%s package=%v monorepo=%v",
		ctx.Base, ctx.RepoRoot, pkg != nil, mono != nil)
	return ctx, nil
}

// FindPackage returns the nearest package manifest in or above dir, or nil.
// package.json wins over go.mod in the same directory.
func FindPackage(fs fsys.FileSystem, dir string) (*PackageInfo, error) {
	npmPath, npmOK, err := fs.FindNearestAncestor(NpmManifest, dir)
	if err != nil {
		return nil, newProjectError(LookupFailed, "failed to search for package.json", dir, err)
	}
	goPath, goOK, err := fs.FindNearestAncestor(GoModManifest, dir)
	if err != nil {
		return nil, newProjectError(LookupFailed, "failed to search for go.mod", dir, err)
	}

	switch {
	case npmOK && (!goOK || len(filepath.Dir(npmPath)) >= len(filepath.Dir(goPath))):
		content, err := fs.ReadFile(npmPath)
		if err != nil {
			return nil, newProjectError(LookupFailed, "failed to read package.json", npmPath, err)
		}
		pkg, err := parsePackageJSON(npmPath, content)
		if err != nil {
			return nil, err
		}
		return &PackageInfo{
			Name:         pkg.Name,
			Private:      pkg.Private,
			Dir:          filepath.Dir(npmPath),
			ManifestPath: npmPath,
			Kind:         KindNpm,
		}, nil
	case goOK:
		content, err := fs.ReadFile(goPath)
		if err != nil {
			return nil, newProjectError(LookupFailed, "failed to read go.mod", goPath, err)
		}
		return parseGoMod(goPath, content)
	default:
		return nil, nil
	}
}

// FindMonorepo returns the nearest workspace root in or above dir, or nil.
// package.json files without workspaces are skipped and the search continues
// from the directory above them. A go.work file also marks a workspace root;
// the deeper of the two candidates wins.
func FindMonorepo(fs fsys.FileSystem, dir string) (*MonorepoInfo, error) {
	npm, err := findNpmWorkspace(fs, dir)
	if err != nil {
		return nil, err
	}

	workPath, ok, err := fs.FindNearestAncestor(GoWorkFile, dir)
	if err != nil {
		return nil, newProjectError(LookupFailed, "failed to search for go.work", dir, err)
	}
	if !ok {
		return npm, nil
	}
	if npm != nil && len(npm.Dir) >= len(filepath.Dir(workPath)) {
		return npm, nil
	}

	content, err := fs.ReadFile(workPath)
	if err != nil {
		return nil, newProjectError(LookupFailed, "failed to read go.work", workPath, err)
	}
	return parseGoWork(workPath, content)
}

func findNpmWorkspace(fs fsys.FileSystem, dir string) (*MonorepoInfo, error) {
	cur := dir
	for {
		path, ok, err := fs.FindNearestAncestor(NpmManifest, cur)
		if err != nil {
			return nil, newProjectError(LookupFailed, "failed to search for package.json", cur, err)
		}
		if !ok {
			return nil, nil
		}

		content, err := fs.ReadFile(path)
		if err != nil {
			return nil, newProjectError(LookupFailed, "failed to read package.json", path, err)
		}
		pkg, err := parsePackageJSON(path, content)
		if err != nil {
			return nil, err
		}
		if members, ok := pkg.workspaces(); ok {
			return &MonorepoInfo{
				Name:         pkg.Name,
				Dir:          filepath.Dir(path),
				ManifestPath: path,
				Members:      members,
				Kind:         KindNpm,
			}, nil
		}

		manifestDir := filepath.Dir(path)
		next := filepath.Dir(manifestDir)
		if next == manifestDir {
			return nil, nil
		}
		cur = next
	}
}

// FindRepoRoot returns the directory holding the nearest .git entry, or "".
func FindRepoRoot(fs fsys.FileSystem, dir string) (string, error) {
	path, ok, err := fs.FindNearestAncestor(GitDir, dir)
	if err != nil {
		return "", newProjectError(LookupFailed, "failed to search for .git", dir, err)
	}
	if !ok {
		return "", nil
	}
	return filepath.Dir(path), nil
}
