// Package loader reads a game directory: a game.yaml manifest plus
// scenes/, items/, and characters/ collections of per-record YAML
// files.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fable/internal/debug"
	"fable/internal/game"
)

type manifest struct {
	Title         string `yaml:"title"`
	Author        string `yaml:"author"`
	Description   string `yaml:"description"`
	StartingScene string `yaml:"starting_scene"`
	Banner        string `yaml:"banner"`
}

// Load reads the full world definition from dir. A missing or broken
// manifest, or a starting scene that does not resolve, is fatal;
// missing collection directories and individually broken record files
// only produce warnings.
func Load(dir string, dbg *debug.Logger) (*game.World, error) {
	data, err := os.ReadFile(filepath.Join(dir, "game.yaml"))
	if err != nil {
		return nil, fmt.Errorf("game manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("game manifest: %w", err)
	}

	world := &game.World{
		Title:         m.Title,
		Author:        m.Author,
		Description:   m.Description,
		StartingScene: m.StartingScene,
		Banner:        m.Banner,
		Scenes:        loadScenes(filepath.Join(dir, "scenes"), dbg),
		Items:         loadItems(filepath.Join(dir, "items"), dbg),
		Characters:    loadCharacters(filepath.Join(dir, "characters"), dbg),
	}

	if m.StartingScene == "" {
		return nil, fmt.Errorf("game manifest: no starting_scene")
	}
	if _, ok := world.Scenes[m.StartingScene]; !ok {
		return nil, fmt.Errorf("starting scene %q not found", m.StartingScene)
	}
	return world, nil
}

func loadScenes(dir string, dbg *debug.Logger) map[string]*game.Scene {
	scenes := make(map[string]*game.Scene)
	files := yamlFiles(dir, dbg)
	for _, path := range files {
		scene := &game.Scene{}
		if err := decodeFile(path, scene); err != nil {
			dbg.Printf("skipping scene file %s: %v", path, err)
			continue
		}

		// The canonical id is the path relative to the scenes root;
		// nested directories become slash-separated prefixes.
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		id := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
		scene.ID = id
		scenes[id] = scene

		// Register the bare filename as an alias when unambiguous.
		simple := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, taken := scenes[simple]; !taken {
			scenes[simple] = scene
		}
	}
	dbg.Printf("loaded %d scene files from %s", len(files), dir)
	return scenes
}

func loadItems(dir string, dbg *debug.Logger) map[string]*game.Item {
	items := make(map[string]*game.Item)
	for _, path := range yamlFiles(dir, dbg) {
		item := &game.Item{}
		if err := decodeFile(path, item); err != nil {
			dbg.Printf("skipping item file %s: %v", path, err)
			continue
		}
		if item.ID == "" {
			item.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		items[item.ID] = item
	}
	return items
}

func loadCharacters(dir string, dbg *debug.Logger) map[string]*game.Character {
	characters := make(map[string]*game.Character)
	for _, path := range yamlFiles(dir, dbg) {
		ch := &game.Character{}
		if err := decodeFile(path, ch); err != nil {
			dbg.Printf("skipping character file %s: %v", path, err)
			continue
		}
		if ch.ID == "" {
			ch.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		characters[ch.ID] = ch
	}
	return characters
}

// yamlFiles lists every .yaml/.yml file under dir, recursively. A
// missing directory yields an empty list and a warning.
func yamlFiles(dir string, dbg *debug.Logger) []string {
	if _, err := os.Stat(dir); err != nil {
		dbg.Printf("collection directory not found: %s", dir)
		return nil
	}
	var files []string
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	return files
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
