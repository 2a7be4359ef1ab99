package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tacogips/mdocs/internal/debug"
	"github.com/tacogips/mdocs/internal/project"
)

// RewriteImports replaces require/import specifiers that point at the package
// root, relative to filePath's directory, with the package's published name.
// Private packages, and files with no owning package, are left untouched.
//
// Only the exact relative specifier is rewritten:
//
//	require('../..')        -> require('my-pkg')
//	import x from "../.."   -> import x from "my-pkg"
func RewriteImports(content, filePath string, pkg *project.PackageInfo) (string, error) {
	if pkg == nil || pkg.Private || pkg.Name == "" {
		return content, nil
	}

	rel, err := filepath.Rel(filepath.Dir(filePath), pkg.Dir)
	if err != nil || rel == "" {
		return "", &ParseError{
			Type:    InvalidRelativePath,
			Message: fmt.Sprintf("no relative path from %s to package root %s", filepath.Dir(filePath), pkg.Dir),
			File:    filePath,
			Cause:   err,
		}
	}
	rel = filepath.ToSlash(rel)

	var pairs []string
	for _, quote := range []string{"'", `"`} {
		pairs = append(pairs,
			"require("+quote+rel+quote+")", "require("+quote+pkg.Name+quote+")",
			" from "+quote+rel+quote, " from "+quote+pkg.Name+quote,
		)
	}
	rewritten := strings.NewReplacer(pairs...).Replace(content)

	if rewritten != content {
		debug.Debug("[parser] Rewrote imports of %s in %s", rel, filePath)
	}
	return rewritten, nil
}
