package engine

import (
	"fmt"
	"strconv"
	"strings"
)

func (e *Engine) handleGo(target string) {
	if target == "" {
		e.errorf("Where do you want to go?")
		return
	}
	flags := e.player.Flags()
	visible := e.scene.VisibleExits(flags)

	name := ""
	for exitName := range visible {
		if strings.EqualFold(exitName, target) {
			name = exitName
			break
		}
	}
	if name == "" {
		e.errorf("There's no '%s' that you can see.", target)
		return
	}

	if e.scene.ExitLocked(name, flags) {
		e.narrate(e.scene.LockedExitMessage(name))
		return
	}

	next, ok := e.world.Scene(visible[name].Target)
	if !ok {
		e.errorf("Error: Scene '%s' not found.", visible[name].Target)
		return
	}
	e.scene = next
	e.renderScene()
}

func (e *Engine) handleExamine(target string) {
	if target == "" {
		e.renderScene()
		return
	}
	flags := e.player.Flags()

	// Scene objects first, then items lying in the scene, then the
	// inventory.
	for name, desc := range e.scene.VisibleObjects(flags) {
		if strings.EqualFold(name, target) {
			e.narrate(desc)
			e.scene.RevealHiddenObjects(name, e.player)
			return
		}
	}

	if id := e.sceneItem(target); id != "" {
		if item, ok := e.world.Item(id); ok {
			e.narrate(item.ExaminationText())
			return
		}
	}

	if id := e.inventoryItem(target); id != "" {
		if item, ok := e.world.Item(id); ok {
			e.narrate(item.ExaminationText())
		} else {
			e.narrate(fmt.Sprintf("It's a %s.", target))
		}
		return
	}

	e.errorf("You don't see any '%s' here.", target)
}

func (e *Engine) handleTake(target string) {
	if target == "" {
		e.errorf("What do you want to take?")
		return
	}
	id := e.sceneItem(target)
	if id == "" {
		e.errorf("You don't see any '%s' here.", target)
		return
	}

	if e.scene.ItemLocked(id, e.player.Flags()) {
		e.narrate(e.scene.LockedItemMessage(id))
		return
	}

	name := e.world.ItemName(id)
	if item, ok := e.world.Item(id); ok && !item.Takeable {
		e.errorf("You can't take the %s.", name)
		return
	}

	e.scene.RemoveItem(id)
	e.player.AddItem(id)
	e.narrate(fmt.Sprintf("You take the %s.", name))
}

func (e *Engine) handleDrop(target string) {
	if target == "" {
		e.errorf("What do you want to drop?")
		return
	}
	id := e.inventoryItem(target)
	if id == "" {
		e.errorf("You don't have a '%s'.", target)
		return
	}
	e.player.RemoveItem(id)
	e.scene.AddItem(id)
	e.narrate(fmt.Sprintf("You drop the %s.", e.world.ItemName(id)))
}

func (e *Engine) handleUse(target, indirect string) {
	if target == "" {
		e.errorf("What do you want to use?")
		return
	}
	id := e.inventoryItem(target)
	if id == "" {
		e.errorf("You don't have a '%s'.", target)
		return
	}

	if item, ok := e.world.Item(id); ok {
		key := "use"
		if indirect != "" {
			key = "use_on_" + indirect
		}
		if effect, ok := item.EffectFor(key); ok {
			if effect.Message != "" {
				e.narrate(effect.Message)
			}
			for _, flag := range effect.FlagsSet {
				e.player.AddFlag(flag)
			}
			return
		}
	}

	// No declared effect; scripted scene events get a chance. Authors
	// key triggers by item id, players type display names, so both
	// spellings are tried.
	for _, name := range []string{id, target} {
		trigger := "use " + name
		if indirect != "" {
			trigger = fmt.Sprintf("use %s on %s", name, indirect)
		}
		if event, ok := e.scene.CheckEvent(trigger, e.player.Flags()); ok {
			e.applyEvent(event)
			return
		}
	}

	if indirect != "" {
		e.errorf("You can't use the %s on the %s.", target, indirect)
	} else {
		e.errorf("You can't use the %s.", target)
	}
}

func (e *Engine) handleTalk(target string) {
	if target == "" {
		e.errorf("Who do you want to talk to?")
		return
	}
	flags := e.player.Flags()

	var speaker, id string
	for charID := range e.scene.Characters {
		if !e.scene.HasCharacter(charID, flags) {
			continue
		}
		name := charID
		if ch, ok := e.world.Characters[charID]; ok {
			name = ch.DisplayName()
		}
		if strings.EqualFold(charID, target) || strings.EqualFold(name, target) {
			speaker, id = name, charID
			break
		}
	}
	if id == "" {
		e.errorf("There's no one called '%s' here.", target)
		return
	}

	character, ok := e.world.Characters[id]
	if !ok {
		e.errorf("There's no one called '%s' here.", target)
		return
	}

	dialogue := character.DialogueFor(flags)
	if len(dialogue.Options) == 0 {
		e.narrate(fmt.Sprintf("%s: %q", speaker, dialogue.Text))
		return
	}

	options := make([]string, len(dialogue.Options))
	for i, opt := range dialogue.Options {
		options[i] = opt.Text
	}
	e.dialogue = &pendingDialogue{speaker: speaker, dialogue: dialogue}
	e.dialoguePrompt(speaker, dialogue.Text, options)
}

// handleDialogueChoice consumes the numeric reply to an open dialogue
// prompt and runs the chosen option's actions in declared order.
func (e *Engine) handleDialogueChoice(raw string) {
	pending := e.dialogue
	e.dialogue = nil

	// An invalid choice aborts the conversation without touching
	// player state.
	choice, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || choice < 1 || choice > len(pending.dialogue.Options) {
		e.narrate("You decide against saying anything.")
		return
	}

	option := pending.dialogue.Options[choice-1]
	if option.Response != "" {
		e.narrate(fmt.Sprintf("%s: %q", pending.speaker, option.Response))
	}
	for _, action := range option.Actions {
		switch action.Type {
		case "set_flag":
			e.player.AddFlag(action.Flag)
		case "give_item":
			e.player.AddItem(action.Item)
			e.info(fmt.Sprintf("* %s gives you the %s.", pending.speaker, e.world.ItemName(action.Item)))
		default:
			e.dbg.Printf("unknown dialogue action type %q", action.Type)
		}
	}
}

func (e *Engine) handleInventory() {
	ids := e.player.Inventory()
	if len(ids) == 0 {
		e.narrate("Your inventory is empty.")
		return
	}
	lines := make([]string, len(ids))
	for i, id := range ids {
		lines[i] = e.world.ItemName(id)
	}
	e.list("You are carrying:", lines)
}

// handleInteraction covers the physical verbs that are only meaningful
// when a scene scripts them: eat, drink, push, pull, open, close.
func (e *Engine) handleInteraction(verb, target, indirect string) {
	if e.fireEvent(verb, target, indirect) {
		return
	}
	if target == "" {
		e.errorf("What do you want to %s?", verb)
		return
	}
	if e.visibleHere(target) {
		e.errorf("You can't %s the %s.", verb, target)
		return
	}
	e.errorf("You don't see any '%s' here to %s.", target, verb)
}

func (e *Engine) handleSearch(target string) {
	if e.fireEvent("search", target, "") {
		return
	}
	if target == "" {
		e.renderScene()
		return
	}

	flags := e.player.Flags()
	for name, desc := range e.scene.VisibleObjects(flags) {
		if strings.EqualFold(name, target) {
			e.scene.RevealHiddenObjects(name, e.player)
			e.narrate(fmt.Sprintf("You search the %s. %s", name, desc))
			return
		}
	}
	e.errorf("You don't see any '%s' here to search.", target)
}

func (e *Engine) handleTriggerEvent(eventID string) {
	event, ok := e.scene.Event(eventID)
	if !ok || !event.Condition.Met(e.player.Flags()) {
		e.narrate("Nothing happens.")
		return
	}
	e.applyEvent(event)
}

// sceneItem resolves an item lying in the scene by id, scene-level
// name, catalogue display name, or space-for-underscore spelling.
func (e *Engine) sceneItem(name string) string {
	if id := e.scene.FindItem(name); id != "" {
		return id
	}
	norm := strings.ReplaceAll(strings.ToLower(name), " ", "_")
	if id := e.scene.FindItem(norm); id != "" {
		return id
	}
	for id := range e.scene.Items {
		if strings.EqualFold(e.world.ItemName(id), name) {
			return id
		}
	}
	return ""
}

// inventoryItem resolves a carried item by id or display name.
func (e *Engine) inventoryItem(name string) string {
	for _, id := range e.player.Inventory() {
		if id == name || strings.EqualFold(e.world.ItemName(id), name) {
			return id
		}
	}
	return ""
}

// visibleHere reports whether the name refers to anything the player
// can currently see in the scene.
func (e *Engine) visibleHere(name string) bool {
	flags := e.player.Flags()
	for obj := range e.scene.VisibleObjects(flags) {
		if strings.EqualFold(obj, name) {
			return true
		}
	}
	return e.sceneItem(name) != ""
}

func (e *Engine) dialoguePrompt(speaker, text string, options []string) {
	e.turnLog = append(e.turnLog, fmt.Sprintf("%s: %q", speaker, text))
	for i, opt := range options {
		e.turnLog = append(e.turnLog, fmt.Sprintf("%d. %s", i+1, opt))
	}
	e.sink.DialoguePrompt(speaker, text, options)
}
