// Package clenv provides functionality to work with environment variables.
package clenv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// GitRoot returns the root directory of the git repository the process runs in.
func GitRoot(ctx context.Context) (string, error) {
	var errb, outb bytes.Buffer

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Stderr = &errb
	cmd.Stdout = &outb

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to run git rev-parse --show-toplevel: %w: %v", err, errb.String())
	}

	return strings.TrimSpace(outb.String()), nil
}

// LoadFromGitRoot loads environment variables from a file in the root of
// the git repository.
func LoadFromGitRoot(ctx context.Context, names ...string) error {
	root, err := GitRoot(ctx)
	if err != nil {
		return err
	}

	return Load(root, names...)
}

// Load environment variables from the files 'names' in directory 'dir'. Files that don't exist are
// skipped, variables that are already set are not overwritten.
func Load(dir string, names ...string) error {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		paths = append(paths, path)
	}

	if len(paths) == 0 {
		return nil
	}

	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}

	return nil
}
