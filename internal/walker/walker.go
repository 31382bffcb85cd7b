// Package walker discovers the files a directory-rooted distillation run
// should process: an ignore-aware, symlink-averse directory walk that
// assigns each discovered file a stable discovery index so parallel
// processing downstream can restore source order.
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/distil/internal/distilerr"
	"github.com/standardbeagle/distil/internal/options"
)

// Discovered is one file found by Walk, tagged with the order it was
// encountered in so callers can restore deterministic output order after
// concurrent processing.
type Discovered struct {
	Path  string
	Index int
}

// Walk discovers every eligible regular file under root. It never
// follows symlinks, always includes hidden files, and — unless
// opts.Recursive is set — only looks at root's immediate children.
func Walk(root string, opts options.ProcessOptions) ([]Discovered, error) {
	info, err := os.Lstat(root)
	if err != nil {
		return nil, distilerr.NewIOError("stat", root, err)
	}
	if !info.IsDir() {
		return nil, distilerr.NewConfigError("root path is not a directory: " + root)
	}

	ignore := loadIgnore(root)

	var out []Discovered
	index := 0

	var walkDir func(dir string, depth int) error
	walkDir = func(dir string, depth int) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return distilerr.NewIOError("readdir", dir, err)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			rel, _ := filepath.Rel(root, full)
			rel = filepath.ToSlash(rel)

			fi, err := entry.Info()
			if err != nil {
				continue
			}
			if fi.Mode()&os.ModeSymlink != 0 {
				continue
			}

			if entry.IsDir() {
				if ignore.matches(rel, true) {
					continue
				}
				if !opts.Recursive {
					continue
				}
				if err := walkDir(full, depth+1); err != nil {
					return err
				}
				continue
			}

			if !fi.Mode().IsRegular() {
				continue
			}
			if ignore.matches(rel, false) {
				continue
			}
			if !matchesPatterns(rel, opts.IncludePatterns, opts.ExcludePatterns) {
				continue
			}

			out = append(out, Discovered{Path: full, Index: index})
			index++
		}
		return nil
	}

	if err := walkDir(root, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// matchesPatterns applies IncludePatterns (if any are set, path must
// match at least one) and ExcludePatterns (path must match none).
func matchesPatterns(path string, include, exclude []string) bool {
	for _, pat := range exclude {
		if ok, _ := doublestar.Match(pat, path); ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pat := range include {
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
	}
	return false
}

// ignoreSet is a simplified, doublestar-backed rewrite of the gitignore
// pattern matcher: each line of .gitignore/.ignore/.git/info/exclude
// becomes one doublestar pattern, with "!"-negation and trailing-slash
// directory-only semantics preserved.
type ignoreSet struct {
	rules []ignoreRule
}

type ignoreRule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

func loadIgnore(root string) *ignoreSet {
	set := &ignoreSet{}
	for _, rel := range []string{".gitignore", ".ignore", filepath.Join(".git", "info", "exclude")} {
		set.loadFile(filepath.Join(root, rel))
	}
	return set
}

func (s *ignoreSet) loadFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rule := ignoreRule{pattern: trimmed}
		if strings.HasPrefix(rule.pattern, "!") {
			rule.negate = true
			rule.pattern = rule.pattern[1:]
		}
		if strings.HasSuffix(rule.pattern, "/") {
			rule.dirOnly = true
			rule.pattern = strings.TrimSuffix(rule.pattern, "/")
		}
		if strings.HasPrefix(rule.pattern, "/") {
			rule.anchored = true
			rule.pattern = rule.pattern[1:]
		}
		if !strings.Contains(rule.pattern, "/") && !rule.anchored {
			rule.pattern = "**/" + rule.pattern
		}
		s.rules = append(s.rules, rule)
	}
}

func (s *ignoreSet) matches(relPath string, isDir bool) bool {
	ignored := false
	for _, r := range s.rules {
		if r.dirOnly && !isDir {
			continue
		}
		pat := r.pattern
		if isDir {
			// A directory-targeting pattern should also match anything
			// nested under it; doublestar handles this via a "/**" suffix.
			if ok, _ := doublestar.Match(pat, relPath); ok {
				ignored = !r.negate
				continue
			}
			if ok, _ := doublestar.Match(pat+"/**", relPath); ok {
				ignored = !r.negate
			}
			continue
		}
		if ok, _ := doublestar.Match(pat, relPath); ok {
			ignored = !r.negate
		}
	}
	return ignored
}
