package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirReportsNewEntries(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Dir(ctx, dir, 20*time.Millisecond, nil, func() { changes <- struct{}{} })
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "pdf-processing"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "linter"), 0o755))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestDirMissing(t *testing.T) {
	err := Dir(context.Background(), filepath.Join(t.TempDir(), "missing"), 0, nil, func() {})
	assert.Error(t, err)
}
