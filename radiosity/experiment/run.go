package experiment

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
)

// DefaultRoot is the directory runs are created under unless told otherwise.
const DefaultRoot = "experiments"

const (
	latestLink = "latest"
	// Attempts at a fresh run ID before giving up
	idAttempts = 5
)

// Run is the output directory of one simulation.
type Run struct {
	ID      string
	Dir     string // absolute
	Started time.Time
}

// NewRun creates a fresh run directory under root and repoints root/latest at it.
func NewRun(root string) (*Run, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", root, err)
	}

	var run *Run
	for range idAttempts {
		id := GenerateExperimentID()
		dir, err := filepath.Abs(filepath.Join(root, id))
		if err != nil {
			return nil, err
		}
		err = os.Mkdir(dir, 0755)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("creating run directory: %w", err)
		}
		run = &Run{ID: id, Dir: dir, Started: time.Now().UTC()}
		break
	}
	if run == nil {
		return nil, fmt.Errorf("no unused run id under %s after %d attempts", root, idAttempts)
	}

	if err := linkLatest(root, run.ID); err != nil {
		log.Printf("run %s: %s not updated: %v", run.ID, latestLink, err)
	}
	return run, nil
}

// linkLatest points root/latest at id. The new link replaces the old one by rename, so the
// name never goes missing.
func linkLatest(root, id string) error {
	tmp := filepath.Join(root, "."+latestLink+"-"+id)
	if err := os.Symlink(id, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, filepath.Join(root, latestLink)); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Path returns where the named output of the run lives.
func (r *Run) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// Archive copies src into the run directory under its base name.
func (r *Run) Archive(src string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("archiving %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(r.Path(filepath.Base(src)))
	if err != nil {
		return fmt.Errorf("archiving %s: %w", src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("archiving %s: %w", src, err)
	}
	return out.Close()
}
