package game

import (
	"testing"

	"gopkg.in/yaml.v3"
)

const characterYAML = `
name: Elder Rowan
description: A stooped figure wrapped in grey wool.
dialogue:
  text: Who goes there?
  options:
    - text: A traveller.
      response: Then be welcome.
      actions:
        - type: set_flag
          flag: met_elder
        - type: give_item
          item: token
    - text: None of your business.
      response: Hmph.
dialogue_states:
  trusted:
    condition:
      has_flags: [met_elder]
    text: Back again, traveller?
    options:
      - text: Tell me about the manor.
        response: Its doors hide more than dust.
  hostile:
    condition:
      has_flags: [met_elder, insulted_elder]
    text: Never reached, trusted matches first.
`

func loadTestCharacter(t *testing.T) *Character {
	t.Helper()
	ch := &Character{}
	if err := yaml.Unmarshal([]byte(characterYAML), ch); err != nil {
		t.Fatalf("failed to unmarshal character: %v", err)
	}
	ch.ID = "elder"
	return ch
}

func TestDialogueForDefault(t *testing.T) {
	ch := loadTestCharacter(t)

	d := ch.DialogueFor(map[string]bool{})
	if d.Text != "Who goes there?" {
		t.Errorf("default dialogue text = %q", d.Text)
	}
	if len(d.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(d.Options))
	}
	actions := d.Options[0].Actions
	if len(actions) != 2 || actions[0].Type != "set_flag" || actions[1].Type != "give_item" {
		t.Errorf("option actions lost declared order: %+v", actions)
	}
}

func TestDialogueForStateOverride(t *testing.T) {
	ch := loadTestCharacter(t)
	flags := map[string]bool{"met_elder": true, "insulted_elder": true}

	d := ch.DialogueFor(flags)
	if d.Text != "Back again, traveller?" {
		t.Errorf("expected first declared state to win, got %q", d.Text)
	}

	// Repeated resolution is deterministic and side-effect free.
	if again := ch.DialogueFor(flags); again.Text != d.Text {
		t.Errorf("dialogue changed between calls: %q", again.Text)
	}
}

func TestCharacterDisplayName(t *testing.T) {
	ch := loadTestCharacter(t)
	if ch.DisplayName() != "Elder Rowan" {
		t.Errorf("display name = %q", ch.DisplayName())
	}
	anon := &Character{ID: "stranger"}
	if anon.DisplayName() != "stranger" {
		t.Errorf("fallback display name = %q", anon.DisplayName())
	}
}
