// Package typeface resolves font names to parsed truetype faces. It backs
// the kernel's typography capability: a builder or kernel asks for a font
// by name and either gets a face or a FontNotFoundError. There is no
// silent fallback to a default face.
package typeface

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrFontNotFound is the sentinel all FontNotFoundError values unwrap to.
var ErrFontNotFound = errors.New("font not found")

// FontNotFoundError reports a font name with no registered face.
type FontNotFoundError struct {
	Name string
}

func (e *FontNotFoundError) Error() string {
	return fmt.Sprintf("font %q is not registered", e.Name)
}

func (e *FontNotFoundError) Unwrap() error { return ErrFontNotFound }

// Registry maps font names to parsed truetype faces. Safe for concurrent
// use; registration is expected at startup, resolution at build time.
type Registry struct {
	mu    sync.RWMutex
	faces map[string]*truetype.Font
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{faces: make(map[string]*truetype.Font)}
}

// Default returns a registry preloaded with the embedded Go faces, so the
// module works without any font files on disk. The faces are registered
// under their canonical names only.
func Default() *Registry {
	r := NewRegistry()
	for name, data := range map[string][]byte{
		"Go Regular": goregular.TTF,
		"Go Bold":    gobold.TTF,
		"Go Italic":  goitalic.TTF,
		"Go Mono":    gomono.TTF,
	} {
		// Embedded faces are known-good; a parse failure here is a
		// build-environment defect, not a runtime condition.
		if err := r.RegisterTTF(name, data); err != nil {
			panic(fmt.Sprintf("typeface: embedded face %s: %v", name, err))
		}
	}
	return r
}

// Register adds a parsed face under the given name, replacing any
// previous registration.
func (r *Registry) Register(name string, f *truetype.Font) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faces[name] = f
}

// RegisterTTF parses raw TTF bytes and registers the face under name.
func (r *Registry) RegisterTTF(name string, data []byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("typeface: parse %s: %w", name, err)
	}
	r.Register(name, f)
	return nil
}

// LoadFile reads a TTF file and registers it under name.
func (r *Registry) LoadFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("typeface: read %s: %w", path, err)
	}
	return r.RegisterTTF(name, data)
}

// LoadDir registers every .ttf file in dir under its base filename
// (without extension). Unparseable files are skipped; the first read or
// parse error is reported after the scan completes.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("typeface: read dir %s: %w", dir, err)
	}
	var firstErr error
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".ttf") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := r.LoadFile(name, filepath.Join(dir, e.Name())); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Resolve returns the face registered under name, or a FontNotFoundError.
func (r *Registry) Resolve(name string) (*truetype.Font, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.faces[name]
	if !ok {
		return nil, &FontNotFoundError{Name: name}
	}
	return f, nil
}

// Names returns the registered font names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.faces))
	for n := range r.faces {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
