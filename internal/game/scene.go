package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scene is one location in the world, decoded from a scene YAML file.
// States and events keep their declared document order: authors layer
// narrative by listing the most specific state first, and resolution is
// first-match-wins.
type Scene struct {
	ID          string
	Name        string
	Description string
	States      []SceneState
	Exits       map[string]Exit
	Objects     map[string]Object
	Items       map[string]SceneItem
	Characters  map[string]Presence
	LockedExits map[string]Lock
	LockedItems map[string]Lock
	Events      []Event

	// Hidden objects and exits disclosed during this session. Never
	// written back to source data.
	revealed map[string]bool
}

// SceneState is a flag-gated description override.
type SceneState struct {
	ID          string
	Condition   Condition `yaml:"condition"`
	Description string    `yaml:"description"`
}

// Exit leads to another scene. A plain string in the source is
// shorthand for {target: <string>}.
type Exit struct {
	Target      string `yaml:"target"`
	Hidden      bool   `yaml:"hidden"`
	Description string `yaml:"description"`
}

func (e *Exit) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&e.Target)
	}
	type plain Exit
	return node.Decode((*plain)(e))
}

// Object is scenery the player can examine. Examining it may reveal
// hidden objects and set flags. A plain string is shorthand for
// {description: <string>}.
type Object struct {
	Description string   `yaml:"description"`
	Hidden      bool     `yaml:"hidden"`
	Reveals     []string `yaml:"reveals"`
	FlagsSet    []string `yaml:"flags_set"`
}

func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&o.Description)
	}
	type plain Object
	return node.Decode((*plain)(o))
}

// SceneItem marks an item as present in the scene. The value may carry
// a display name override; a bare scalar just marks presence.
type SceneItem struct {
	Name string `yaml:"name"`
}

func (si *SceneItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return nil
	}
	type plain SceneItem
	return node.Decode((*plain)(si))
}

// Presence controls whether a character appears in the scene: either a
// plain bool or a condition on player flags.
type Presence struct {
	present   bool
	condition *Condition
}

func (p *Presence) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&p.present)
	}
	var doc struct {
		Condition *Condition `yaml:"condition"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}
	p.present = true
	p.condition = doc.Condition
	return nil
}

// Holds reports whether the character is present given the flags.
func (p Presence) Holds(flags map[string]bool) bool {
	if p.condition != nil {
		return p.condition.Met(flags)
	}
	return p.present
}

// Lock guards an exit or item. The condition states what the player
// needs to pass; while it is unmet the lock message is shown instead.
type Lock struct {
	Condition Condition `yaml:"condition"`
	Message   string    `yaml:"message"`
}

// Event is a scripted beat keyed by a trigger phrase or fired directly
// by id.
type Event struct {
	ID          string
	Trigger     string    `yaml:"trigger"`
	Condition   Condition `yaml:"condition"`
	Message     string    `yaml:"message"`
	FlagsSet    []string  `yaml:"flags_set"`
	ItemsAdd    []string  `yaml:"items_add"`
	ChangeScene string    `yaml:"change_scene"`
}

func (s *Scene) UnmarshalYAML(node *yaml.Node) error {
	var doc struct {
		Name        string               `yaml:"name"`
		Description string               `yaml:"description"`
		States      yaml.Node            `yaml:"states"`
		Exits       map[string]Exit      `yaml:"exits"`
		Objects     map[string]Object    `yaml:"objects"`
		Items       map[string]SceneItem `yaml:"items"`
		Characters  map[string]Presence  `yaml:"characters"`
		LockedExits map[string]Lock      `yaml:"locked_exits"`
		LockedItems map[string]Lock      `yaml:"locked_items"`
		Events      yaml.Node            `yaml:"events"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}

	s.Name = doc.Name
	s.Description = doc.Description
	s.Exits = doc.Exits
	s.Objects = doc.Objects
	s.Items = doc.Items
	s.Characters = doc.Characters
	s.LockedExits = doc.LockedExits
	s.LockedItems = doc.LockedItems
	s.revealed = make(map[string]bool)

	if err := eachMappingEntry(&doc.States, func(id string, value *yaml.Node) error {
		state := SceneState{ID: id}
		if err := value.Decode(&state); err != nil {
			return err
		}
		s.States = append(s.States, state)
		return nil
	}); err != nil {
		return fmt.Errorf("states: %w", err)
	}

	if err := eachMappingEntry(&doc.Events, func(id string, value *yaml.Node) error {
		event := Event{ID: id}
		if err := value.Decode(&event); err != nil {
			return err
		}
		// Authors may key an event by its trigger phrase instead of
		// declaring trigger: separately.
		if event.Trigger == "" {
			event.Trigger = id
		}
		s.Events = append(s.Events, event)
		return nil
	}); err != nil {
		return fmt.Errorf("events: %w", err)
	}

	return nil
}

// eachMappingEntry walks a YAML mapping in document order. A zero or
// null node is treated as empty.
func eachMappingEntry(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping, got %s", node.Tag)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		if err := fn(key, node.Content[i+1]); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// GetDescription resolves the scene description against the declared
// states; the first state whose condition holds wins, else the default.
func (s *Scene) GetDescription(flags map[string]bool) string {
	for _, state := range s.States {
		if state.Condition.Met(flags) {
			return state.Description
		}
	}
	return s.Description
}

// VisibleExits returns the exits the player can currently see. Hidden
// exits stay out of the map until revealed.
func (s *Scene) VisibleExits(flags map[string]bool) map[string]Exit {
	visible := make(map[string]Exit, len(s.Exits))
	for name, exit := range s.Exits {
		if exit.Hidden && !s.revealed[name] {
			continue
		}
		if exit.Description == "" {
			exit.Description = "Exit to " + name
		}
		visible[name] = exit
	}
	return visible
}

// VisibleObjects returns name -> description for everything the player
// can currently see.
func (s *Scene) VisibleObjects(flags map[string]bool) map[string]string {
	visible := make(map[string]string, len(s.Objects))
	for name, obj := range s.Objects {
		if obj.Hidden && !s.revealed[name] {
			continue
		}
		visible[name] = obj.Description
	}
	return visible
}

// HasObject reports whether the scene declares the named object,
// revealed or not.
func (s *Scene) HasObject(name string) bool {
	_, ok := s.Objects[name]
	return ok
}

// ObjectDescription returns the declared description for an object, or
// "" when absent.
func (s *Scene) ObjectDescription(name string, flags map[string]bool) string {
	return s.Objects[name].Description
}

// RevealHiddenObjects discloses everything the named object reveals and
// applies its flags to the player. Safe to call repeatedly: revealed is
// a set and flags are a set.
func (s *Scene) RevealHiddenObjects(name string, player *Player) {
	obj, ok := s.Objects[name]
	if !ok {
		return
	}
	if s.revealed == nil {
		s.revealed = make(map[string]bool)
	}
	for _, revealed := range obj.Reveals {
		s.revealed[revealed] = true
	}
	for _, flag := range obj.FlagsSet {
		player.AddFlag(flag)
	}
}

// FindItem resolves an item reference against the scene, by id first
// and then by case-insensitive display name. Returns "" when absent.
func (s *Scene) FindItem(name string) string {
	if _, ok := s.Items[name]; ok {
		return name
	}
	for id, item := range s.Items {
		if strings.EqualFold(item.Name, name) {
			return id
		}
	}
	return ""
}

// RemoveItem takes an item out of the scene.
func (s *Scene) RemoveItem(id string) {
	delete(s.Items, id)
}

// AddItem places an item into the scene.
func (s *Scene) AddItem(id string) {
	if s.Items == nil {
		s.Items = make(map[string]SceneItem)
	}
	s.Items[id] = SceneItem{}
}

// ExitLocked reports whether the named exit is currently barred: a lock
// is declared and the player does not yet satisfy its condition.
func (s *Scene) ExitLocked(name string, flags map[string]bool) bool {
	lock, ok := s.LockedExits[name]
	return ok && !lock.Condition.Met(flags)
}

// LockedExitMessage returns the author's lock message for an exit.
func (s *Scene) LockedExitMessage(name string) string {
	lock, ok := s.LockedExits[name]
	if !ok {
		return "You can't go that way."
	}
	if lock.Message == "" {
		return "That way is locked."
	}
	return lock.Message
}

// ItemLocked reports whether the named item is currently barred.
func (s *Scene) ItemLocked(id string, flags map[string]bool) bool {
	lock, ok := s.LockedItems[id]
	return ok && !lock.Condition.Met(flags)
}

// LockedItemMessage returns the author's lock message for an item.
func (s *Scene) LockedItemMessage(id string) string {
	lock, ok := s.LockedItems[id]
	if !ok {
		return "You can't take that."
	}
	if lock.Message == "" {
		return "You can't take that right now."
	}
	return lock.Message
}

// CheckEvent finds the first declared event whose trigger matches the
// phrase (case-insensitively) and whose condition holds. Duplicate
// trigger strings resolve to the first in document order.
func (s *Scene) CheckEvent(trigger string, flags map[string]bool) (*Event, bool) {
	for i := range s.Events {
		event := &s.Events[i]
		if strings.EqualFold(event.Trigger, trigger) && event.Condition.Met(flags) {
			return event, true
		}
	}
	return nil, false
}

// Event looks up a scripted event directly by id, bypassing trigger
// matching.
func (s *Scene) Event(id string) (*Event, bool) {
	for i := range s.Events {
		if s.Events[i].ID == id {
			return &s.Events[i], true
		}
	}
	return nil, false
}

// HasCharacter reports whether the character is present in the scene
// for the given flags.
func (s *Scene) HasCharacter(id string, flags map[string]bool) bool {
	presence, ok := s.Characters[id]
	if !ok {
		return false
	}
	return presence.Holds(flags)
}
