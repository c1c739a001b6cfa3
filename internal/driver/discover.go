package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"mlc/internal/config"
)

// DiscoverFiles expands paths into the sorted, de-duplicated list of files
// to check. Directories are walked with hidden entries skipped, the root
// .gitignore honoured when cfg.RespectGitignore, exclude globs applied and
// only cfg.Extensions kept. Files named explicitly skip the extension
// filter but not the exclude globs.
func DiscoverFiles(ctx context.Context, paths []string, cfg *config.Config) ([]string, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", root, err)
		}
		if !info.IsDir() {
			if !excluded(cfg, root, root) {
				add(root)
			}
			continue
		}
		if err := walkDir(ctx, root, cfg, add); err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return files, nil
}

func walkDir(ctx context.Context, root string, cfg *config.Config, add func(string)) error {
	var ignore *gitignore.GitIgnore
	if cfg.RespectGitignore {
		gitignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
		}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if isHidden(d.Name()) || excluded(cfg, root, path) || ignored(ignore, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || isHidden(d.Name()) {
			return nil
		}
		if !cfg.HasExtension(path) || excluded(cfg, root, path) || ignored(ignore, rel) {
			return nil
		}
		add(path)
		return nil
	})
}

// excluded matches path against the exclude globs, relative to the config
// directory when path lies below it and to the walk root otherwise.
func excluded(cfg *config.Config, walkRoot, path string) bool {
	if len(cfg.Exclude) == 0 {
		return false
	}
	if base := cfg.Root(); base != "" {
		if rel, ok := relBelow(base, path); ok {
			return cfg.Excluded(rel)
		}
	}
	if rel, ok := relBelow(walkRoot, path); ok && rel != "." {
		return cfg.Excluded(rel)
	}
	return cfg.Excluded(path)
}

func relBelow(base, path string) (string, bool) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

func ignored(ignore *gitignore.GitIgnore, rel string) bool {
	return ignore != nil && ignore.MatchesPath(filepath.ToSlash(rel))
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
