package sandbox

import (
	"github.com/vovakirdan/sandfall/internal/registry"
	"github.com/vovakirdan/sandfall/internal/scenes"
)

func init() {
	builtin, err := scenes.Builtin().LoadAll()
	if err != nil {
		panic(err) // embedded scenes are part of the binary
	}
	for _, sc := range builtin {
		registry.Register(info(sc), factory(sc))
	}
}

// RegisterScenes registers every scene the loader finds. Scenes with the
// ID of an already registered one replace it. Returns how many were
// registered.
func RegisterScenes(l *scenes.Loader) (int, error) {
	all, err := l.LoadAll()
	if err != nil {
		return 0, err
	}
	for _, sc := range all {
		registry.Replace(info(sc), factory(sc))
	}
	return len(all), nil
}

func info(sc scenes.Scene) registry.Info {
	return registry.Info{
		ID:          sc.ID,
		Title:       sc.Name,
		Description: sc.Description,
		Source:      sc.FilePath,
	}
}

func factory(sc scenes.Scene) registry.Factory {
	return func() registry.Game {
		return New(sc)
	}
}
