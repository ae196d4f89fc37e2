// Package file stores saves as JSON documents in one directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ctclostio/MojaveAdventure/internal/gameerr"
	"github.com/ctclostio/MojaveAdventure/internal/storage"
)

const ext = ".json"

// Store keeps each save at <dir>/<name>.json.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, gameerr.Validationf("save directory must not be empty")
	}
	return &Store{dir: dir}, nil
}

// Dir returns the save directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) (string, error) {
	if err := storage.ValidateSaveName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+ext), nil
}

// Save writes data under name, replacing any previous save.
//
// Precondition: name passes storage.ValidateSaveName; nothing touches the
// filesystem otherwise.
// Postcondition: The file is replaced atomically or left as it was.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return gameerr.Wrap(gameerr.KindPersistence, err, "creating save directory")
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return gameerr.Wrap(gameerr.KindPersistence, err, "creating temp save")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return gameerr.Wrap(gameerr.KindPersistence, err, fmt.Sprintf("writing save %q", name))
	}
	if err := tmp.Close(); err != nil {
		return gameerr.Wrap(gameerr.KindPersistence, err, fmt.Sprintf("writing save %q", name))
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return gameerr.Wrap(gameerr.KindPersistence, err, fmt.Sprintf("replacing save %q", name))
	}
	return nil
}

// Load returns the document saved under name.
//
// Postcondition: Returns a not-found error when no such save exists.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, gameerr.Newf(gameerr.KindNotFound, "no save named %q", name)
	}
	if err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, fmt.Sprintf("reading save %q", name))
	}
	return data, nil
}

// List returns the saves in the directory sorted by name. A missing
// directory holds no saves.
func (s *Store) List(ctx context.Context) ([]storage.SaveInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, gameerr.Wrap(gameerr.KindPersistence, err, "listing saves")
	}

	var out []storage.SaveInfo
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ext)
		if e.IsDir() || !ok || storage.ValidateSaveName(name) != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, storage.SaveInfo{Name: name, Size: int(info.Size()), UpdatedAt: info.ModTime().UTC()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the save under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return gameerr.Newf(gameerr.KindNotFound, "no save named %q", name)
	}
	if err != nil {
		return gameerr.Wrap(gameerr.KindPersistence, err, fmt.Sprintf("deleting save %q", name))
	}
	return nil
}
