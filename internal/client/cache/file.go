package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileCache keeps each key in a JSON file under dir, so the snapshot
// survives restarts without any external service.
type FileCache struct {
	dir string
}

func NewFile(dir string) *FileCache {
	return &FileCache{dir: dir}
}

func (c *FileCache) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return data, nil
}

func (c *FileCache) Set(key string, value []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path(key), value, 0o644)
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}
