package game

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/decker502/sparks/internal/particle"
)

// ErrEffectNotFound is returned when an effect name is not in the library.
var ErrEffectNotFound = errors.New("effect not found")

// EffectLibrary is the merged, name-indexed set of effect definitions
// loaded from one or more YAML files.
//
// Like the rest of the viewer state it is built once at startup and then
// only read, so lookups need no locking.
type EffectLibrary struct {
	effects map[string]*particle.EffectConfig // name -> effect
	sources map[string]string                 // name -> file it came from
	names   []string                          // sorted
	logger  *log.Logger
}

// NewEffectLibrary returns an empty library. A nil logger discards output.
func NewEffectLibrary(logger *log.Logger) *EffectLibrary {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &EffectLibrary{
		effects: make(map[string]*particle.EffectConfig),
		sources: make(map[string]string),
		logger:  logger,
	}
}

// LoadEffectLibrary loads every *.yaml / *.yml file directly inside dir
// of fsys. Files are read in lexical order; an effect name defined twice,
// in the same or in different files, is an error.
//
// Example:
//
//	lib, err := LoadEffectLibrary(embedded.FS(), "data/effects", logger)
//	lib, err := LoadEffectLibrary(os.DirFS("./my-effects"), ".", logger)
func LoadEffectLibrary(fsys fs.FS, dir string, logger *log.Logger) (*EffectLibrary, error) {
	lib := NewEffectLibrary(logger)

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, path.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list effect files in %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no effect files in %s: %w", dir, fs.ErrNotExist)
	}

	for _, file := range files {
		parsed, err := particle.ParseEffectFile(fsys, file)
		if err != nil {
			return nil, err
		}
		if err := lib.Add(parsed, file); err != nil {
			return nil, err
		}
	}

	lib.logger.Debug("effect library loaded", "files", len(files), "effects", lib.Len())
	return lib, nil
}

// Add merges a parsed library. Nothing is added if any name collides.
func (l *EffectLibrary) Add(parsed *particle.Library, source string) error {
	for i := range parsed.Effects {
		name := parsed.Effects[i].Name
		if prev, exists := l.sources[name]; exists {
			return fmt.Errorf("effect %q in %s already defined in %s: %w",
				name, source, prev, particle.ErrDuplicateEffect)
		}
	}

	for i := range parsed.Effects {
		e := &parsed.Effects[i]
		l.effects[e.Name] = e
		l.sources[e.Name] = source
		l.names = append(l.names, e.Name)
	}
	sort.Strings(l.names)
	return nil
}

// Get returns the effect with the given name.
func (l *EffectLibrary) Get(name string) (*particle.EffectConfig, error) {
	e, ok := l.effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEffectNotFound, name)
	}
	return e, nil
}

// Source returns the file an effect was loaded from.
func (l *EffectLibrary) Source(name string) string {
	return l.sources[name]
}

// Names returns all effect names, sorted.
func (l *EffectLibrary) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Len returns the number of effects.
func (l *EffectLibrary) Len() int {
	return len(l.names)
}

// Filter returns the sorted names containing query, ignoring case.
// An empty query matches everything.
func (l *EffectLibrary) Filter(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return l.Names()
	}

	var out []string
	for _, name := range l.names {
		if strings.Contains(strings.ToLower(name), query) {
			out = append(out, name)
		}
	}
	return out
}

// IndexOf returns the position of name in Names(), or -1.
func (l *EffectLibrary) IndexOf(name string) int {
	i := sort.SearchStrings(l.names, name)
	if i < len(l.names) && l.names[i] == name {
		return i
	}
	return -1
}
