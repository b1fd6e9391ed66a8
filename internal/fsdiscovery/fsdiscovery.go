// Package fsdiscovery walks a repository tree looking for files the
// analyzer pipeline cares about: Java sources, Spring property/YAML files,
// Maven POMs and legacy Spring XML bean-context files. It is a trimmed
// adaptation of the provider.FileSearcher cached-walk idiom
// (provider/lib.go): walk once per base path, cache the result, never
// recurse into a handful of always-excluded directories, and keep walking
// past a single unreadable subtree rather than aborting.
package fsdiscovery

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
)

// defaultExcludedDirs are never descended into: build output, VCS metadata,
// and dependency caches that can dwarf the actual source tree.
var defaultExcludedDirs = []string{
	".git", "target", "build", "out", "node_modules", ".gradle", ".mvn", "bin",
}

// Walker caches one filesystem walk per root so property loading, XML
// bean-context scanning, and Java source discovery don't each re-walk the
// tree.
type Walker struct {
	log   logr.Logger
	cache map[string][]string
}

// NewWalker returns a Walker that logs skipped subtrees at V(4).
func NewWalker(log logr.Logger) *Walker {
	return &Walker{log: log, cache: map[string][]string{}}
}

// AllFiles returns every regular file under root, walked once and cached.
// A directory that cannot be read is logged and skipped, never aborts the
// walk: failures are per-element, never pipeline-wide.
func (w *Walker) AllFiles(ctx context.Context, root string) []string {
	if cached, ok := w.cache[root]; ok {
		return cached
	}
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if err != nil {
			w.log.V(4).Info("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if isExcludedDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		files = append(files, path)
		return nil
	})
	w.cache[root] = files
	return files
}

func isExcludedDir(name string) bool {
	for _, ex := range defaultExcludedDirs {
		if name == ex {
			return true
		}
	}
	return false
}

// ByName returns every file under root whose base name matches one of names.
func (w *Walker) ByName(ctx context.Context, root string, names ...string) []string {
	var out []string
	for _, f := range w.AllFiles(ctx, root) {
		base := filepath.Base(f)
		for _, n := range names {
			if base == n {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// ByExtension returns every file under root with one of the given extensions
// (each including the leading dot, e.g. ".java").
func (w *Walker) ByExtension(ctx context.Context, root string, extensions ...string) []string {
	var out []string
	for _, f := range w.AllFiles(ctx, root) {
		ext := filepath.Ext(f)
		for _, e := range extensions {
			if ext == e {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// LooksLikeXMLBeanContext reports whether path is an .xml file whose base
// name, lowercased, contains "context" or "beans" (applicationContext.xml,
// foo-context.xml, beans.xml); the directory part of path is not looked at.
func LooksLikeXMLBeanContext(path string) bool {
	base := filepath.Base(path)
	if filepath.Ext(base) != ".xml" {
		return false
	}
	lower := strings.ToLower(base)
	return strings.Contains(lower, "context") || strings.Contains(lower, "applicationcontext") || strings.Contains(lower, "beans")
}
