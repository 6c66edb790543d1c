package docpress

import (
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// errSourceNotWatchable reports an EnableWatch call against a source with
// no change notification support.
var errSourceNotWatchable = errors.New("template source does not support watching")

// Template is a loaded, parsed template. Immutable after load: reloading
// replaces the cache entry instead of mutating it, so in-flight renders
// keep a consistent view.
type Template struct {
	Name string
	Text string
	AST  []Node
}

// Loader reads named templates from a Source and caches them. The cache is
// the only shared mutable structure in the package: loads of the same
// uncached name collapse into a single read, and invalidation never leaves
// a half-written entry behind.
type Loader struct {
	src       Source
	log       *zap.Logger
	group     singleflight.Group
	textGroup singleflight.Group

	mu    sync.RWMutex
	gen   uint64
	cache map[string]*Template
	texts map[string]string

	stopWatch func() error
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the loader's logger.
func WithLoaderLogger(log *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a loader over a source. Without WithWatch the loader
// never re-reads a name after its first successful load.
func NewLoader(src Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		src:   src,
		log:   zap.NewNop(),
		cache: make(map[string]*Template),
		texts: make(map[string]string),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// EnableWatch starts auto-invalidation on source changes. It is an
// explicit switch for development-style use, not an environment sniff; it
// fails when the source cannot be watched.
func (l *Loader) EnableWatch() error {
	ws, ok := l.src.(WatchableSource)
	if !ok {
		return errSourceNotWatchable
	}

	stop, err := ws.Watch(func(name string) {
		l.log.Debug("template changed, invalidating", zap.String("template", name))
		l.Invalidate(name)
	})
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.stopWatch = stop
	l.mu.Unlock()
	return nil
}

// Load returns the cached template for name, reading and parsing it on
// first use. Concurrent first loads perform at most one actual read.
// Failures are NotFoundError, CorruptError, or TemplateSyntaxError.
func (l *Loader) Load(name string) (*Template, error) {
	l.mu.RLock()
	tmpl, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	v, err, _ := l.group.Do(name, func() (interface{}, error) {
		// Re-check under the flight: a concurrent load may have filled
		// the entry between the miss and the flight starting.
		l.mu.RLock()
		cached, ok := l.cache[name]
		gen := l.gen
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		data, err := l.src.Read(name)
		if err != nil {
			return nil, err
		}

		ast, err := Parse(string(data))
		if err != nil {
			return nil, err
		}

		loaded := &Template{Name: name, Text: string(data), AST: ast}

		// An invalidation that landed while the read was in flight wins:
		// caching this result would resurrect the pre-invalidation text.
		l.mu.Lock()
		if l.gen == gen {
			l.cache[name] = loaded
		}
		l.mu.Unlock()

		l.log.Debug("template loaded",
			zap.String("template", name),
			zap.Int("bytes", len(loaded.Text)),
		)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Template), nil
}

// LoadText returns a name's raw text through the cache without parsing
// it. For assets emitted verbatim, such as the document stylesheet, which
// must never be run through the directive parser.
func (l *Loader) LoadText(name string) (string, error) {
	l.mu.RLock()
	text, ok := l.texts[name]
	l.mu.RUnlock()
	if ok {
		return text, nil
	}

	v, err, _ := l.textGroup.Do(name, func() (interface{}, error) {
		l.mu.RLock()
		cached, ok := l.texts[name]
		gen := l.gen
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		data, err := l.src.Read(name)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		if l.gen == gen {
			l.texts[name] = string(data)
		}
		l.mu.Unlock()
		return string(data), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// ReadText returns a template's raw text without parsing it: the cached
// text when an entry is loaded, a direct source read otherwise. Used by
// static validation, which must see even templates that fail to parse.
func (l *Loader) ReadText(name string) (string, error) {
	l.mu.RLock()
	if tmpl, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return tmpl.Text, nil
	}
	if text, ok := l.texts[name]; ok {
		l.mu.RUnlock()
		return text, nil
	}
	l.mu.RUnlock()

	data, err := l.src.Read(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Invalidate drops one cached entry. The next Load re-reads the source.
func (l *Loader) Invalidate(name string) {
	l.mu.Lock()
	delete(l.cache, name)
	delete(l.texts, name)
	l.gen++
	l.mu.Unlock()
	l.group.Forget(name)
	l.textGroup.Forget(name)
}

// InvalidateAll drops every cached entry.
func (l *Loader) InvalidateAll() {
	l.mu.Lock()
	l.cache = make(map[string]*Template)
	l.texts = make(map[string]string)
	l.gen++
	l.mu.Unlock()
}

// Size returns the number of cached templates.
func (l *Loader) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cache)
}

// Close stops the watcher, if one is running.
func (l *Loader) Close() error {
	l.mu.Lock()
	stop := l.stopWatch
	l.stopWatch = nil
	l.mu.Unlock()
	if stop != nil {
		return stop()
	}
	return nil
}
