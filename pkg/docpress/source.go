package docpress

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Source supplies raw template bytes by name. Names are file names within
// the source ("order-confirmation.html", "styles.css").
type Source interface {
	Read(name string) ([]byte, error)
}

// WatchableSource is a Source that can signal changes to named templates.
// Stop releases the watcher; onChange may be invoked from another goroutine.
type WatchableSource interface {
	Source
	Watch(onChange func(name string)) (stop func() error, err error)
}

//go:embed templates/*.html templates/*.css
var defaultTemplates embed.FS

// DefaultSource returns the built-in order-confirmation and invoice
// templates shipped with the package.
func DefaultSource() Source {
	sub, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		panic("docpress: embedded templates missing: " + err.Error())
	}
	return NewFSSource(sub)
}

// FSSource reads templates out of any fs.FS, such as an embed.FS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a source over an fs.FS.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Read(name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(name)
		}
		return nil, NewCorruptError(name, err)
	}
	return data, nil
}

// DirSource reads templates out of a directory and can watch it for edits,
// which backs the loader's development-style hot reload.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over a filesystem directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(name)
		}
		return nil, NewCorruptError(name, err)
	}
	return data, nil
}

// Watch reports write and create events for files in the directory, keyed
// by base name.
func (s *DirSource) Watch(onChange func(name string)) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					onChange(filepath.Base(event.Name))
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	stop := func() error {
		err := watcher.Close()
		<-done
		return err
	}
	return stop, nil
}

// MapSource is an in-memory source for tests and embedded one-off
// templates. Set may be called at any time; when the source is watched,
// Set notifies the watcher.
type MapSource struct {
	mu        sync.RWMutex
	templates map[string]string
	onChange  func(name string)
}

// NewMapSource creates a source over a name-to-text map.
func NewMapSource(templates map[string]string) *MapSource {
	copied := make(map[string]string, len(templates))
	for k, v := range templates {
		copied[k] = v
	}
	return &MapSource{templates: copied}
}

func (s *MapSource) Read(name string) ([]byte, error) {
	s.mu.RLock()
	text, ok := s.templates[name]
	s.mu.RUnlock()
	if !ok {
		return nil, NewNotFoundError(name)
	}
	return []byte(text), nil
}

// Set stores or replaces a template and signals any watcher.
func (s *MapSource) Set(name, text string) {
	s.mu.Lock()
	s.templates[name] = text
	onChange := s.onChange
	s.mu.Unlock()
	if onChange != nil {
		onChange(name)
	}
}

func (s *MapSource) Watch(onChange func(name string)) (func() error, error) {
	s.mu.Lock()
	s.onChange = onChange
	s.mu.Unlock()
	stop := func() error {
		s.mu.Lock()
		s.onChange = nil
		s.mu.Unlock()
		return nil
	}
	return stop, nil
}
