package library

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/disk"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
)

const trashDirName = ".trash"

var ErrOutsideLibrary = errors.New("path is outside the library root")

// Library wraps the filesystem side of the asset library. Asset files
// live under the root; trashing an asset moves its folder under
// <root>/.trash/<asset-id> so a restore can put it back.
type Library struct {
	root string
}

func New(root string) *Library {
	return &Library{root: root}
}

func (l *Library) Root() string {
	return l.root
}

func (l *Library) TrashDir() string {
	return filepath.Join(l.root, trashDirName)
}

// Contains reports whether the path resolves inside the library root.
// Side effects refuse to touch anything outside it.
func (l *Library) Contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	root, err := filepath.Abs(l.root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// OpenFolder reveals the folder containing the path in the host file
// manager.
func (l *Library) OpenFolder(path string) error {
	dir := path
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}

	return open.Start(dir)
}

// MoveToTrash moves the asset folder under the trash dir, keyed by the
// asset id. Returns the trashed path.
func (l *Library) MoveToTrash(id, path string) (string, error) {
	if !l.Contains(path) {
		return "", ErrOutsideLibrary
	}

	if err := os.MkdirAll(l.TrashDir(), os.ModePerm); err != nil {
		return "", err
	}

	trashed := filepath.Join(l.TrashDir(), id)
	if err := os.Rename(path, trashed); err != nil {
		return "", err
	}

	logrus.Infof("moved %s to trash", path)

	return trashed, nil
}

// RestoreFromTrash moves a trashed asset folder back to its original
// path.
func (l *Library) RestoreFromTrash(id, originalPath string) error {
	trashed := filepath.Join(l.TrashDir(), id)
	if _, err := os.Stat(trashed); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(originalPath), os.ModePerm); err != nil {
		return err
	}

	return os.Rename(trashed, originalPath)
}

// Purge removes a trashed asset folder for good.
func (l *Library) Purge(id string) error {
	return os.RemoveAll(filepath.Join(l.TrashDir(), id))
}

// Usage returns the disk usage of the volume holding the library root.
func (l *Library) Usage() (*disk.UsageStat, error) {
	return disk.Usage(l.root)
}

// Checksum computes the sha256 of the file and returns it with the
// file size.
func Checksum(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}

	return hex.EncodeToString(h.Sum(nil)), n, nil
}
