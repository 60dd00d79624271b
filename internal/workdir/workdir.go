// Package workdir finds the directory whose .modals folder holds the
// settings, so commands run from a subdirectory, or from a second checkout
// of the same project, share one config.
package workdir

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// rootFile redirects to another directory's settings. A git worktree or
	// a scratch checkout drops one in to reuse the main checkout's config
	// instead of starting from defaults.
	rootFile  = ".modals-root"
	configDir = ".modals"
)

// ResolveBaseDir returns the directory to load settings from. baseDir is
// checked first, then the top of its git work tree; in each, a .modals-root
// redirect wins over a .modals directory. With no marker in either place
// baseDir is returned cleaned.
func ResolveBaseDir(baseDir string) string {
	if baseDir == "" {
		return baseDir
	}
	baseDir = filepath.Clean(baseDir)

	candidates := []string{baseDir}
	if top, err := gitTopLevel(baseDir); err == nil && top != "" {
		if top = filepath.Clean(top); top != baseDir {
			candidates = append(candidates, top)
		}
	}
	for _, dir := range candidates {
		if resolved, ok := readRootFile(dir); ok {
			return resolved
		}
		if hasConfigDir(dir) {
			return dir
		}
	}
	return baseDir
}

// readRootFile follows a .modals-root redirect. Relative targets resolve
// against dir.
func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}

	resolved := strings.TrimSpace(string(content))
	if resolved == "" {
		return "", false
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}

	return filepath.Clean(resolved), true
}

func hasConfigDir(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, configDir))
	return err == nil && fi.IsDir()
}

func gitTopLevel(dir string) (string, error) {
	out, err := exec.Command("git", "-C", dir, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
