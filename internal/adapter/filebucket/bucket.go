package filebucket

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/code-round.net/internal/core/ports/secondary"
	"gitlab.com/code-round.net/internal/static/errs"
)

var _ secondary.SubmissionBucket = (*FileBucket)(nil)

// FileBucket keeps submissions under <root>/<team>/<filename>
type FileBucket struct {
	root string
}

func NewFileBucket(root string) *FileBucket {
	return &FileBucket{root: root}
}

// Put creates the team folder on demand. Existing files are never overwritten.
func (b *FileBucket) Put(ctx context.Context, team, filename string, source []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validName(team) || !validName(filename) {
		return fmt.Errorf("%w: invalid path %s/%s", errs.ErrPersistence, team, filename)
	}

	dir := filepath.Join(b.root, team)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create team folder: %w", errs.ErrPersistence, err)
	}

	f, err := os.OpenFile(filepath.Join(dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to create file: %w", errs.ErrPersistence, err)
	}
	if _, err := f.Write(source); err != nil {
		f.Close()
		return fmt.Errorf("%w: failed to write file: %w", errs.ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close file: %w", errs.ErrPersistence, err)
	}
	return nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && filepath.Base(name) == name
}
