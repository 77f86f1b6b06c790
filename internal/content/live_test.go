package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func writeCorpus(t *testing.T, dir string, fsys map[string]string) {
	t.Helper()
	for name, data := range fsys {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{
		"site.yaml":      testSiteYAML,
		"pages/index.md": "---\ntitle: Home | Test\ndescription: first\n---\n",
	})
	site, err := Load(os.DirFS(dir))
	require.NoError(t, err)
	live := NewLive(site)

	reloaded := make(chan error, 4)
	w, err := NewWatcher(dir, live, zaptest.NewLogger(t),
		WithDebounce(20*time.Millisecond),
		WithReloadHook(func(_ *Site, err error) { reloaded <- err }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeCorpus(t, dir, map[string]string{
		"pages/index.md": "---\ntitle: Home | Test\ndescription: second\n---\n",
	})
	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload")
	}
	home, err := live.Site().Page(Root)
	require.NoError(t, err)
	require.Equal(t, "second", home.Description)

	// A broken edit keeps the previous site.
	writeCorpus(t, dir, map[string]string{
		"pages/broken.md": "---\nparent: /missing/\ntitle: B\ndescription: b\n---\n",
	})
	select {
	case err := <-reloaded:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not attempt reload")
	}
	require.False(t, live.Site().Has("/broken/"))

	cancel()
	require.NoError(t, <-done)
}
