package engine

import (
	"fmt"

	"fable/internal/game"
)

// fireEvent looks for a scripted event matching the verb phrase. The
// cascade is fixed: bare verb, then "verb target", then "verb target
// on indirect"; the first declared-order match under its condition
// wins.
func (e *Engine) fireEvent(verb, target, indirect string) bool {
	flags := e.player.Flags()
	triggers := []string{verb}
	if target != "" {
		triggers = append(triggers, verb+" "+target)
		if indirect != "" {
			triggers = append(triggers, fmt.Sprintf("%s %s on %s", verb, target, indirect))
		}
	}

	for _, trigger := range triggers {
		if event, ok := e.scene.CheckEvent(trigger, flags); ok {
			e.applyEvent(event)
			return true
		}
	}
	return false
}

// applyEvent runs one scripted event: message, then flags, then item
// grants, then the scene change. A dangling change_scene is reported
// but does not abort the rest of the event.
func (e *Engine) applyEvent(event *game.Event) {
	if event.Message != "" {
		e.narrate(event.Message)
	}
	for _, flag := range event.FlagsSet {
		e.player.AddFlag(flag)
	}
	for _, id := range event.ItemsAdd {
		e.player.AddItem(id)
		e.info(fmt.Sprintf("* You got: %s", e.world.ItemName(id)))
	}
	if event.ChangeScene != "" {
		next, ok := e.world.Scene(event.ChangeScene)
		if !ok {
			e.errorf("Error: Scene '%s' not found.", event.ChangeScene)
			return
		}
		e.scene = next
		e.renderScene()
	}
}
