package game

// World aggregates the loaded static world definition: the game
// manifest plus every scene, item, and character record.
type World struct {
	Title         string
	Author        string
	Description   string
	StartingScene string
	Banner        string

	Scenes     map[string]*Scene
	Items      map[string]*Item
	Characters map[string]*Character
}

// Scene returns a loaded scene by id.
func (w *World) Scene(id string) (*Scene, bool) {
	scene, ok := w.Scenes[id]
	return scene, ok
}

// Item returns a loaded item by id.
func (w *World) Item(id string) (*Item, bool) {
	item, ok := w.Items[id]
	return item, ok
}

// ItemName returns the display name for an item id, falling back to the
// id itself when the item is not in the catalogue.
func (w *World) ItemName(id string) string {
	if item, ok := w.Items[id]; ok {
		return item.DisplayName()
	}
	return id
}
