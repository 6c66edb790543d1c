package docpress

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingSource wraps a MapSource and counts actual reads.
type countingSource struct {
	*MapSource
	reads atomic.Int64
}

func newCountingSource(templates map[string]string) *countingSource {
	return &countingSource{MapSource: NewMapSource(templates)}
}

func (s *countingSource) Read(name string) ([]byte, error) {
	s.reads.Add(1)
	return s.MapSource.Read(name)
}

func TestLoaderCachesFirstRead(t *testing.T) {
	src := newCountingSource(map[string]string{"a.html": "hello {{name}}"})
	loader := NewLoader(src)

	for i := 0; i < 5; i++ {
		tmpl, err := loader.Load("a.html")
		require.NoError(t, err)
		assert.Equal(t, "hello {{name}}", tmpl.Text)
	}

	assert.Equal(t, int64(1), src.reads.Load())
	assert.Equal(t, 1, loader.Size())
}

func TestLoaderParsesOnce(t *testing.T) {
	src := NewMapSource(map[string]string{"a.html": "{{#each xs}}{{this}}{{/each}}"})
	loader := NewLoader(src)

	first, err := loader.Load("a.html")
	require.NoError(t, err)
	second, err := loader.Load("a.html")
	require.NoError(t, err)

	// Same immutable entry, parse included.
	assert.Same(t, first, second)
}

func TestLoaderErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		loader := NewLoader(NewMapSource(nil))
		_, err := loader.Load("missing.html")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("syntax error", func(t *testing.T) {
		loader := NewLoader(NewMapSource(map[string]string{"bad.html": "{{#if x}}no end"}))
		_, err := loader.Load("bad.html")
		require.Error(t, err)
		assert.True(t, IsTemplateSyntaxError(err))
		// Failed loads are not cached; a fixed source can be retried.
		assert.Equal(t, 0, loader.Size())
	})

	t.Run("unreadable file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "locked.html")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o000))
		if _, err := os.ReadFile(path); err == nil {
			t.Skip("running as a user unaffected by file modes")
		}

		loader := NewLoader(NewDirSource(dir))
		_, err := loader.Load("locked.html")
		require.Error(t, err)
		assert.True(t, IsCorrupt(err))
	})
}

func TestLoaderConcurrentLoadReadsOnce(t *testing.T) {
	src := newCountingSource(map[string]string{"a.html": "body"})
	loader := NewLoader(src)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			tmpl, err := loader.Load("a.html")
			assert.NoError(t, err)
			assert.Equal(t, "body", tmpl.Text)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), src.reads.Load())
}

func TestLoaderInvalidate(t *testing.T) {
	src := newCountingSource(map[string]string{"a.html": "v1"})
	loader := NewLoader(src)

	tmpl, err := loader.Load("a.html")
	require.NoError(t, err)
	assert.Equal(t, "v1", tmpl.Text)

	// Without invalidation the old text stays cached.
	src.MapSource.Set("a.html", "v2")
	tmpl, err = loader.Load("a.html")
	require.NoError(t, err)
	assert.Equal(t, "v1", tmpl.Text)

	loader.Invalidate("a.html")
	tmpl, err = loader.Load("a.html")
	require.NoError(t, err)
	assert.Equal(t, "v2", tmpl.Text)
	assert.Equal(t, int64(2), src.reads.Load())
}

// stallingSource reads the value as of the call, then blocks the first
// read until released. Used to hold a load in flight.
type stallingSource struct {
	*MapSource
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stallingSource) Read(name string) ([]byte, error) {
	data, err := s.MapSource.Read(name)
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	return data, err
}

func TestLoaderInvalidateDuringLoad(t *testing.T) {
	src := &stallingSource{
		MapSource: NewMapSource(map[string]string{"a.html": "v1"}),
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	loader := NewLoader(src)

	done := make(chan struct{})
	go func() {
		defer close(done)
		tmpl, err := loader.Load("a.html")
		assert.NoError(t, err)
		assert.Equal(t, "v1", tmpl.Text)
	}()

	<-src.entered
	src.MapSource.Set("a.html", "v2")
	loader.Invalidate("a.html")
	close(src.release)
	<-done

	// The in-flight result must not repopulate the cache past the
	// invalidation; the next load sees the new text.
	tmpl, err := loader.Load("a.html")
	require.NoError(t, err)
	assert.Equal(t, "v2", tmpl.Text)
}

func TestLoaderInvalidateAll(t *testing.T) {
	src := newCountingSource(map[string]string{"a.html": "a", "b.html": "b"})
	loader := NewLoader(src)

	_, err := loader.Load("a.html")
	require.NoError(t, err)
	_, err = loader.Load("b.html")
	require.NoError(t, err)
	require.Equal(t, 2, loader.Size())

	loader.InvalidateAll()
	assert.Equal(t, 0, loader.Size())

	_, err = loader.Load("a.html")
	require.NoError(t, err)
	assert.Equal(t, int64(3), src.reads.Load())
}

func TestLoaderWatchInvalidates(t *testing.T) {
	src := NewMapSource(map[string]string{"a.html": "v1"})
	loader := NewLoader(src)
	require.NoError(t, loader.EnableWatch())
	defer loader.Close()

	tmpl, err := loader.Load("a.html")
	require.NoError(t, err)
	assert.Equal(t, "v1", tmpl.Text)

	// Set signals the watcher synchronously for MapSource.
	src.Set("a.html", "v2")

	tmpl, err = loader.Load("a.html")
	require.NoError(t, err)
	assert.Equal(t, "v2", tmpl.Text)
}

func TestLoaderWatchRequiresWatchableSource(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(NewFSSource(os.DirFS(dir)))
	err := loader.EnableWatch()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errSourceNotWatchable))
}

func TestDirSourceWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.html")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	src := NewDirSource(dir)
	loader := NewLoader(src)
	require.NoError(t, loader.EnableWatch())
	defer loader.Close()

	tmpl, err := loader.Load("a.html")
	require.NoError(t, err)
	assert.Equal(t, "v1", tmpl.Text)

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	// The fsnotify event arrives asynchronously.
	require.Eventually(t, func() bool {
		tmpl, err := loader.Load("a.html")
		return err == nil && tmpl.Text == "v2"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoaderReadText(t *testing.T) {
	src := newCountingSource(map[string]string{"bad.html": "{{#if x}}no end"})
	loader := NewLoader(src)

	// Load fails to parse, but the raw text is still readable for
	// validation.
	_, err := loader.Load("bad.html")
	require.Error(t, err)

	text, err := loader.ReadText("bad.html")
	require.NoError(t, err)
	assert.Equal(t, "{{#if x}}no end", text)
}

func TestLoaderLoadText(t *testing.T) {
	src := newCountingSource(map[string]string{"styles.css": `a::before { content: "{{"; }`})
	loader := NewLoader(src)

	// Never parsed: a literal {{ in an asset is not a syntax error.
	text, err := loader.LoadText("styles.css")
	require.NoError(t, err)
	assert.Equal(t, `a::before { content: "{{"; }`, text)

	_, err = loader.LoadText("styles.css")
	require.NoError(t, err)
	assert.Equal(t, int64(1), src.reads.Load())

	loader.Invalidate("styles.css")
	src.MapSource.Set("styles.css", "b {}")
	text, err = loader.LoadText("styles.css")
	require.NoError(t, err)
	assert.Equal(t, "b {}", text)
}
