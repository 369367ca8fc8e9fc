package loader

import (
	"os"
	"path/filepath"
	"testing"

	"fable/internal/debug"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeTestGame(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "game.yaml"), `
title: The Hidden Manor
author: A. Author
description: A manor with too many doors.
starting_scene: foyer
`)
	writeFile(t, filepath.Join(dir, "scenes", "foyer.yaml"), `
name: Old Foyer
description: A dusty foyer.
exits:
  north: manor/study
`)
	writeFile(t, filepath.Join(dir, "scenes", "manor", "study.yaml"), `
name: Quiet Study
description: A quiet study.
`)
	writeFile(t, filepath.Join(dir, "items", "lamp.yaml"), `
name: Brass Lamp
description: An old brass lamp.
takeable: true
`)
	writeFile(t, filepath.Join(dir, "items", "custom.yaml"), `
id: silver_key
name: Silver Key
takeable: false
`)
	writeFile(t, filepath.Join(dir, "characters", "elder.yaml"), `
name: Elder Rowan
dialogue:
  text: Who goes there?
`)
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeTestGame(t)
	world, err := Load(dir, debug.NewWriterLogger(os.Stderr))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if world.Title != "The Hidden Manor" {
		t.Errorf("title = %q", world.Title)
	}
	if world.StartingScene != "foyer" {
		t.Errorf("starting scene = %q", world.StartingScene)
	}

	if _, ok := world.Scenes["foyer"]; !ok {
		t.Error("foyer scene missing")
	}
	if _, ok := world.Scenes["manor/study"]; !ok {
		t.Error("nested scene should be keyed by relative path")
	}
	if _, ok := world.Scenes["study"]; !ok {
		t.Error("nested scene should also get a bare filename alias")
	}

	if item, ok := world.Items["lamp"]; !ok {
		t.Error("item id should default to filename stem")
	} else if !item.Takeable {
		t.Error("lamp should be takeable")
	}
	if item, ok := world.Items["silver_key"]; !ok {
		t.Error("explicit id field should win over filename")
	} else if item.Takeable {
		t.Error("silver_key declares takeable: false")
	}

	if ch, ok := world.Characters["elder"]; !ok {
		t.Error("character missing")
	} else if ch.Name != "Elder Rowan" {
		t.Errorf("character name = %q", ch.Name)
	}
}

func TestLoadMissingCollections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "game.yaml"), `
title: Bare Bones
starting_scene: only
`)
	writeFile(t, filepath.Join(dir, "scenes", "only.yaml"), `
name: Only Room
description: There is nothing else.
`)

	world, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("missing items/characters dirs must not be fatal: %v", err)
	}
	if len(world.Items) != 0 || len(world.Characters) != 0 {
		t.Error("expected empty collections")
	}
}

func TestLoadMissingManifest(t *testing.T) {
	if _, err := Load(t.TempDir(), nil); err == nil {
		t.Fatal("expected error for missing game.yaml")
	}
}

func TestLoadMissingStartingScene(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "game.yaml"), `
title: Broken
starting_scene: nowhere
`)
	if _, err := Load(dir, nil); err == nil {
		t.Fatal("expected error for unresolved starting scene")
	}
}

func TestLoadSkipsBrokenRecords(t *testing.T) {
	dir := writeTestGame(t)
	writeFile(t, filepath.Join(dir, "items", "broken.yaml"), "{{not yaml")

	world, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("broken record file must not be fatal: %v", err)
	}
	if _, ok := world.Items["broken"]; ok {
		t.Error("broken record should have been skipped")
	}
}
