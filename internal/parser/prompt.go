package parser

import (
	"fmt"
	"sort"
	"strings"

	"fable/internal/game"
)

// BuildPrompt renders the structured parsing prompt for the generative
// backends: the scene's visible objects, exits, and characters, the
// inventory, and the closed list of valid command shapes. Listings are
// sorted so the prompt is stable for a given state.
func BuildPrompt(input string, scene *game.Scene, player *game.Player) string {
	flags := player.Flags()
	visibleObjects := scene.VisibleObjects(flags)
	visibleExits := scene.VisibleExits(flags)

	objectNames := sortedKeys(visibleObjects)
	objectLines := make([]string, 0, len(objectNames))
	for _, name := range objectNames {
		if desc := visibleObjects[name]; desc != "" {
			objectLines = append(objectLines, fmt.Sprintf("%s: %s", name, desc))
		} else {
			objectLines = append(objectLines, name)
		}
	}

	exitNames := sortedKeys(visibleExits)
	exitLines := make([]string, 0, len(exitNames))
	for _, name := range exitNames {
		exit := visibleExits[name]
		exitLines = append(exitLines, fmt.Sprintf("%s -> %s (%s)", name, exit.Target, exit.Description))
	}

	var characters []string
	for id, presence := range scene.Characters {
		if presence.Holds(flags) {
			characters = append(characters, id)
		}
	}
	sort.Strings(characters)

	inventory := strings.Join(player.Inventory(), ", ")
	if inventory == "" {
		inventory = "Empty"
	}

	description := scene.Description
	if len(description) > 150 {
		description = description[:150] + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a command parser for a text adventure game. You MUST output ONLY a single valid JSON object and nothing else.

Current scene: %s
Description: %s

Objects in the scene:
    %s

Characters in the scene:
    %s

Available exits:
    %s

Inventory:
    %s

Valid commands are:
- {"action": "look"} - Look around the current scene
- {"action": "examine", "target": "<object_name>"} - Examine a specific object closely
- {"action": "go", "target": "<exit_name>"} - Move to a different scene through an available exit
- {"action": "take", "target": "<item_name>"} - Pick up an item
- {"action": "use", "target": "<item_name>", "indirect_target": "<object_name>"} - Use an item on an object
- {"action": "talk", "target": "<character_name>"} - Talk to a character
- {"action": "inventory"} - Check your inventory
- {"action": "drop", "target": "<item_name>"} - Drop an item

CRITICAL RULES:
1. For "go" commands, you MUST use the EXACT exit name from this list: %s
   For example, if the user says "go to library" but the exit is named "library_door", use "library_door".
2. For "examine" commands, you MUST use the EXACT object name from this list: %s
3. For "examine" commands, ALWAYS use the action "examine" when the user wants to look at a specific object.
4. Output ONLY a raw JSON object with no additional text.
5. "look" alone is for looking at the entire scene, not specific objects.
6. STRICTLY use ONLY the exact names listed above for exits and objects.

Parse this input: "%s"

Output ONLY the JSON object representing the command.
`,
		scene.Name,
		description,
		orNone(strings.Join(objectLines, "\n    ")),
		orNone(strings.Join(characters, ", ")),
		orNone(strings.Join(exitLines, "\n    ")),
		inventory,
		quotedList(exitNames),
		quotedList(objectNames),
		input,
	)
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func quotedList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return strings.Join(quoted, ", ")
}
