package game

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Character is a person the player can talk to. Dialogue states keep
// declared order; the first whose condition holds overrides the default
// dialogue.
type Character struct {
	ID             string
	Name           string
	Description    string
	Dialogue       Dialogue
	DialogueStates []DialogueState
	Raw            map[string]any
}

// Dialogue is one exchange: the character's line and the player's
// numbered response options.
type Dialogue struct {
	Text    string           `yaml:"text"`
	Options []DialogueOption `yaml:"options"`
}

// DialogueState is a flag-gated dialogue override.
type DialogueState struct {
	ID        string
	Condition Condition        `yaml:"condition"`
	Text      string           `yaml:"text"`
	Options   []DialogueOption `yaml:"options"`
}

// DialogueOption is one selectable response; choosing it runs its
// actions in declared order.
type DialogueOption struct {
	Text     string           `yaml:"text"`
	Response string           `yaml:"response"`
	Actions  []DialogueAction `yaml:"actions"`
}

// DialogueAction mutates player state from a chosen dialogue option.
// Type is "set_flag" or "give_item".
type DialogueAction struct {
	Type string `yaml:"type"`
	Flag string `yaml:"flag"`
	Item string `yaml:"item"`
}

func (c *Character) UnmarshalYAML(node *yaml.Node) error {
	var doc struct {
		ID             string    `yaml:"id"`
		Name           string    `yaml:"name"`
		Description    string    `yaml:"description"`
		Dialogue       Dialogue  `yaml:"dialogue"`
		DialogueStates yaml.Node `yaml:"dialogue_states"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}
	if err := node.Decode(&c.Raw); err != nil {
		return err
	}
	c.ID = doc.ID
	c.Name = doc.Name
	c.Description = doc.Description
	c.Dialogue = doc.Dialogue

	if err := eachMappingEntry(&doc.DialogueStates, func(id string, value *yaml.Node) error {
		state := DialogueState{ID: id}
		if err := value.Decode(&state); err != nil {
			return err
		}
		c.DialogueStates = append(c.DialogueStates, state)
		return nil
	}); err != nil {
		return fmt.Errorf("dialogue_states: %w", err)
	}
	return nil
}

// DisplayName returns the character's name, falling back to its id.
func (c *Character) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// DialogueFor resolves the active dialogue: the first state whose
// condition holds, else the default.
func (c *Character) DialogueFor(flags map[string]bool) Dialogue {
	for _, state := range c.DialogueStates {
		if state.Condition.Met(flags) {
			return Dialogue{Text: state.Text, Options: state.Options}
		}
	}
	return c.Dialogue
}
