package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a scene from a YAML file. Keys missing from the file keep
// their defaults; the result is normalized.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сцены: %w", err)
	}

	scene := DefaultScene()
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("ошибка разбора сцены %s: %w", path, err)
	}
	scene.Normalize()

	return &scene, nil
}

// Save writes a scene to a YAML file.
func Save(scene *Scene, path string) error {
	data, err := yaml.Marshal(scene)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сцены: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
