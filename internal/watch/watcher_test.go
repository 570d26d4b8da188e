package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher_shouldWatch(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		exclude  []string
		path     string
		want     bool
	}{
		{
			name:     "match api json",
			patterns: []string{"vpe.api.json"},
			path:     "/project/vpe.api.json",
			want:     true,
		},
		{
			name:     "match any api source",
			patterns: []string{"*.api"},
			path:     "/project/src/interface.api",
			want:     true,
		},
		{
			name:     "generated java is excluded",
			patterns: []string{"*"},
			exclude:  []string{"*.java"},
			path:     "/project/types/Foo.java",
			want:     false,
		},
		{
			name:     "excluded directory",
			patterns: []string{"*.api"},
			exclude:  []string{".git/"},
			path:     "/project/.git/objects/x.api",
			want:     false,
		},
		{
			name:     "no match",
			patterns: []string{"*.api", "*.api.json"},
			path:     "/project/readme.md",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := &FileWatcher{
				patterns: tt.patterns,
				exclude:  tt.exclude,
			}
			assert.Equal(t, tt.want, fw.shouldWatch(tt.path))
		})
	}
}

func TestFileWatcher_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git"), 0755))

	var mu sync.Mutex
	var paths []string
	onChange := func(path string, op fsnotify.Op) {
		mu.Lock()
		defer mu.Unlock()
		paths = append(paths, path)
	}

	fw, err := NewFileWatcher([]string{"*.api.json"}, []string{".git/", "*.java"}, onChange)
	require.NoError(t, err)
	defer fw.Close()
	require.NoError(t, fw.AddDirectory(tmpDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = fw.Start(ctx)
	}()
	time.Sleep(100 * time.Millisecond)

	input := filepath.Join(tmpDir, "vpe.api.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"types": []}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "Foo.java"), []byte("class Foo {}"), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(paths) > 0
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, p := range paths {
		assert.Equal(t, input, p)
	}
}

func TestFileWatcher_Debounce(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Test: A burst of writes yields a single callback
	tmpDir := t.TempDir()
	var mu sync.Mutex
	calls := 0
	fw, err := NewFileWatcher([]string{"*.api"}, nil, func(string, fsnotify.Op) {
		mu.Lock()
		defer mu.Unlock()
		calls++
	}, WithDebounce(300*time.Millisecond))
	require.NoError(t, err)
	defer fw.Close()
	require.NoError(t, fw.AddDirectory(tmpDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = fw.Start(ctx)
	}()
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(tmpDir, "vpe.api")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("typeonly define foo { u8 a; };"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestFileWatcher_StopsOnCancel(t *testing.T) {
	fw, err := NewFileWatcher([]string{"*"}, nil, func(string, fsnotify.Op) {})
	require.NoError(t, err)
	defer fw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, fw.Start(ctx), context.Canceled)
}
