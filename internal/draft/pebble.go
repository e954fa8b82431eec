package draft

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// PebbleKV keeps drafts in a local pebble database.
type PebbleKV struct {
	db *pebble.DB
}

// OpenPebble opens or creates the database at path. opts may be nil.
func OpenPebble(path string, opts *pebble.Options) (*PebbleKV, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	if opts.FS == nil {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create draft dir: %v", err)
		}
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft db: %v", err)
	}
	return &PebbleKV{db: db}, nil
}

func (p *PebbleKV) Get(key string) (string, bool, error) {
	v, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	defer closer.Close()

	return string(v), true, nil
}

func (p *PebbleKV) Set(key, value string) error {
	return p.db.Set([]byte(key), []byte(value), pebble.Sync)
}

func (p *PebbleKV) Delete(key string) error {
	return p.db.Delete([]byte(key), pebble.Sync)
}

func (p *PebbleKV) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
