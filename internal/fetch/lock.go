package fetch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// KeyLocker serializes work per repository key: an in-process mutex per
// key, plus a lock file under dir when dir is set so that two processes
// cannot race on the same working copy.
type KeyLocker struct {
	dir string
	mus sync.Map
}

func NewKeyLocker(dir string) *KeyLocker {
	return &KeyLocker{dir: dir}
}

// Lock blocks until key is free and returns the matching unlock func.
func (l *KeyLocker) Lock(key string) (func(), error) {
	muIface, _ := l.mus.LoadOrStore(key, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()

	if l.dir == "" {
		return mu.Unlock, nil
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	fileUnlock, err := lockedfile.MutexAt(l.lockPath(key)).Lock()
	if err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("failed to lock %s: %w", key, err)
	}

	return func() {
		fileUnlock()
		mu.Unlock()
	}, nil
}

func (l *KeyLocker) lockPath(key string) string {
	name := strings.NewReplacer("/", "__", `\`, "__").Replace(key)
	return filepath.Join(l.dir, name+".lock")
}
