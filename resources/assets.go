package resources

import (
	"embed"
	"fmt"
	"sync"
)

const soundDir = "sounds/"

//go:embed sounds/*.wav
var soundFS embed.FS

var soundCache sync.Map

// Sound returns the pre-recorded WAV data for a cue name such as "finish".
func Sound(name string) ([]byte, error) {
	return loadBytes(soundFS, soundDir+name+".wav", &soundCache)
}

func loadBytes(fs embed.FS, path string, cache *sync.Map) ([]byte, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.([]byte), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	cache.Store(path, data)
	return data, nil
}
