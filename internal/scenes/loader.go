package scenes

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/sandfall/internal/scenes/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrNotFound is returned by LoadByID for an unknown scene.
var ErrNotFound = errors.New("scene not found")

// Source is one directory tree of scene files.
type Source struct {
	Name string // Shown in FilePath, e.g. "builtin" or a directory
	FS   fs.FS
}

// Loader handles loading scenes from one or more sources.
// Later sources override earlier ones that define the same ID.
type Loader struct {
	Sources []Source

	// OnSkip, if set, is told about files that fail to parse. It fires
	// once per scan, not on every lookup.
	OnSkip func(path string, err error)

	mu     sync.Mutex
	loaded []Scene // Result of the last scan; nil until the first one
}

// NewLoader creates a loader for a single directory.
func NewLoader(root string) *Loader {
	return &Loader{Sources: []Source{{Name: root, FS: os.DirFS(root)}}}
}

// Builtin returns a loader over the embedded scenes only.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(err) // embed pattern guarantees the directory
	}
	return &Loader{Sources: []Source{{Name: "builtin", FS: sub}}}
}

// Default returns the embedded scenes overlaid by userDir.
// An empty userDir means built-in scenes only.
func Default(userDir string) *Loader {
	l := Builtin()
	if userDir != "" {
		l.Sources = append(l.Sources, Source{Name: userDir, FS: os.DirFS(userDir)})
	}
	return l
}

// LoadAll returns every scene sorted by ID. The sources are scanned on the
// first call; later calls reuse that result until Reload.
func (l *Loader) LoadAll() ([]Scene, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded == nil {
		scenes, err := l.scan()
		if err != nil {
			return nil, err
		}
		l.loaded = scenes
	}
	return append([]Scene(nil), l.loaded...), nil
}

// Reload drops the cached scan so the next lookup reads the sources again.
func (l *Loader) Reload() {
	l.mu.Lock()
	l.loaded = nil
	l.mu.Unlock()
}

// scan recursively walks every source. A missing source directory is
// treated as empty.
func (l *Loader) scan() ([]Scene, error) {
	byID := make(map[string]Scene)

	for _, src := range l.Sources {
		err := fs.WalkDir(src.FS, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			ext := strings.ToLower(path.Ext(p))
			if !isSupportedExtension(ext) {
				return nil
			}

			scene, err := l.loadFile(src, p)
			if err != nil {
				// Skip invalid files
				if l.OnSkip != nil {
					l.OnSkip(path.Join(src.Name, p), err)
				}
				return nil
			}

			byID[scene.ID] = scene
			return nil
		})

		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", src.Name, err)
		}
	}

	scenes := make([]Scene, 0, len(byID))
	for _, s := range byID {
		scenes = append(scenes, s)
	}

	// Sort by ID for determinism
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})

	return scenes, nil
}

// LoadFile loads a single scene file from disk.
func LoadFile(p string) (Scene, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Scene{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(data, p)
}

func (l *Loader) loadFile(src Source, p string) (Scene, error) {
	data, err := fs.ReadFile(src.FS, p)
	if err != nil {
		return Scene{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return parse(data, path.Join(src.Name, p))
}

func parse(data []byte, p string) (Scene, error) {
	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Scene{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return fromFormat(parsed, p), nil
}

// LoadByID loads a specific scene by ID.
func (l *Loader) LoadByID(id string) (Scene, error) {
	scenes, err := l.LoadAll()
	if err != nil {
		return Scene{}, err
	}

	for _, s := range scenes {
		if s.ID == id {
			return s, nil
		}
	}

	return Scene{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all scene IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	scenes, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(scenes))
	for i, s := range scenes {
		ids[i] = s.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Scene, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Scene{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
