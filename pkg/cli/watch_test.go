package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumosapi/backend-guard/pkg/linter"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestGuardRelevant(t *testing.T) {
	g := &guard{config: linter.DefaultConfig()}

	tests := []struct {
		path     string
		expected bool
	}{
		{"/repo/src/main/java/app/User.java", true},
		{"/repo/src/main/resources/messages_vi.properties", true},
		{"/repo/backend-guard.yaml", true},
		{"/repo/.backend-guard.yml", true},
		{"/repo/backend_guard_report.json", false},
		{"/repo/src/main/java/app/User.java.swp", false},
		{"/repo/README.md", false},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.expected, g.relevant(tt.path))
		})
	}
}

func TestGuardWatchDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "main", "java"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "main", "resources"), 0755))

	g := &guard{root: root, config: linter.DefaultConfig()}
	assert.Equal(t, []string{
		filepath.Join(root, "src", "main", "java"),
		filepath.Join(root, "src", "main", "resources"),
	}, g.watchDirs())
}

func TestWatchLoop_Debounce(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "app")
	require.NoError(t, os.MkdirAll(nested, 0755))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()
	require.NoError(t, addRecursive(watcher, dir))

	g := &guard{config: linter.DefaultConfig()}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, watcher, 100*time.Millisecond, quietLogger(), g.relevant, func() {
			runs <- struct{}{}
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(nested, "User.java"), []byte("class User {}"), 0644))
	}

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a re-run after a source change")
	}

	select {
	case <-runs:
		t.Fatal("burst of writes should trigger a single re-run")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop on cancel")
	}
}
