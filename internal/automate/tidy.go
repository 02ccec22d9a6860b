package automate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// MoveResult reports what a tidy pass did.
type MoveResult struct {
	Moved  []string
	Errors []error
}

// MoveImages relocates every image file at the top level of src into dst,
// renaming on collision. Subdirectories are left alone.
func MoveImages(src, dst string) (MoveResult, error) {
	var result MoveResult

	entries, err := os.ReadDir(src)
	if err != nil {
		return result, fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return result, fmt.Errorf("creating %s: %w", dst, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if _, ok := imageExts[ext]; !ok {
			continue
		}

		from := filepath.Join(src, e.Name())
		to := uniqueDestination(filepath.Join(dst, e.Name()))
		if err := moveFile(from, to); err != nil {
			log.WithError(err).WithField("file", e.Name()).Debug("move failed")
			result.Errors = append(result.Errors, fmt.Errorf("moving %s: %w", e.Name(), err))
			continue
		}
		result.Moved = append(result.Moved, to)
	}

	return result, nil
}

// uniqueDestination appends _1, _2, ... before the extension until the
// path is free.
func uniqueDestination(p string) string {
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return p
	}
	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// moveFile renames, falling back to copy-and-remove across filesystems.
func moveFile(from, to string) error {
	if err := os.Rename(from, to); err == nil {
		return nil
	}

	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(to)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(to)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(from)
}
