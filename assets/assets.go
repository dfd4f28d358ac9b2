// Package assets embeds the default arena and its wall texture.
package assets

import (
	"bytes"
	_ "embed"
	"fmt"

	"robosim/internal/texture"
	"robosim/internal/world"
)

//go:embed world.txt
var worldData []byte

//go:embed wall.png
var wallData []byte

// LoadWorld reads the world file at path, or the embedded arena when
// path is empty.
func LoadWorld(path string) (*world.Mesh, error) {
	if path != "" {
		return world.Load(path)
	}
	m, err := world.Parse(bytes.NewReader(worldData))
	if err != nil {
		return nil, fmt.Errorf("embedded world: %w", err)
	}
	return m, nil
}

// LoadTexture reads the image at path, or the embedded wall texture when
// path is empty.
func LoadTexture(path string) (*texture.Texture, error) {
	if path != "" {
		return texture.Load(path)
	}
	t, err := texture.Decode(wallData)
	if err != nil {
		return nil, fmt.Errorf("embedded texture: %w", err)
	}
	return t, nil
}
