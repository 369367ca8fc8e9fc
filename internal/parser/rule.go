package parser

import (
	"context"
	"sort"
	"strings"

	"fable/internal/game"
)

const ruleBackendName = "rule"

// canonicalOrder fixes the lookup order of the synonym table so that
// parsing stays deterministic.
var canonicalOrder = []Action{
	ActionLook, ActionGo, ActionTake, ActionUse, ActionTalk,
	ActionInventory, ActionDrop, ActionEat, ActionDrink,
	ActionPush, ActionPull, ActionSearch, ActionOpen, ActionClose,
}

var verbSynonyms = map[Action][]string{
	ActionLook:      {"look", "examine", "inspect", "check", "view", "see", "observe"},
	ActionGo:        {"go", "move", "walk", "run", "travel", "head", "proceed", "enter", "exit", "leave"},
	ActionTake:      {"take", "grab", "pick", "collect", "get", "acquire", "steal"},
	ActionUse:       {"use", "utilize", "employ", "apply", "operate"},
	ActionTalk:      {"talk", "speak", "chat", "converse", "ask", "tell", "say"},
	ActionInventory: {"inventory", "items", "possessions", "belongings"},
	ActionDrop:      {"drop", "discard", "put", "place", "set"},
	ActionEat:       {"eat", "consume", "devour", "taste"},
	ActionDrink:     {"drink", "sip", "gulp", "quaff"},
	ActionPush:      {"push", "press", "shove"},
	ActionPull:      {"pull", "tug", "drag", "yank"},
	ActionSearch:    {"search", "rummage", "scour"},
	ActionOpen:      {"open", "unlock"},
	ActionClose:     {"close", "shut"},
}

var prepositions = map[string]bool{
	"on": true, "in": true, "with": true, "to": true, "at": true,
	"for": true, "from": true, "by": true, "about": true,
}

// RuleBackend is the mandatory deterministic tier: lowercase,
// tokenize, match against fixed tables. It never returns an error.
type RuleBackend struct{}

func NewRuleBackend() *RuleBackend {
	return &RuleBackend{}
}

func (b *RuleBackend) Name() string { return ruleBackendName }

func (b *RuleBackend) Parse(_ context.Context, input string, scene *game.Scene, player *game.Player) (Command, error) {
	lower := strings.ToLower(strings.TrimSpace(input))
	if lower == "" {
		return Command{Action: ActionInvalid}, nil
	}

	// Phrase special cases take priority over the token grammar.
	if strings.Contains(lower, "look around") {
		return Command{Action: ActionLook}, nil
	}
	if target, ok := strings.CutPrefix(lower, "look at "); ok {
		return Command{Action: ActionExamine, Target: strings.TrimSpace(target)}, nil
	}
	if target, ok := strings.CutPrefix(lower, "examine "); ok {
		return Command{Action: ActionExamine, Target: strings.TrimSpace(target)}, nil
	}
	if strings.Contains(lower, "inventory") || strings.Contains(lower, "my items") {
		return Command{Action: ActionInventory}, nil
	}

	words := strings.Fields(lower)
	exits := visibleExitNames(scene, player)

	if len(words) == 1 {
		word := words[0]
		if action, ok := canonicalAction(word); ok {
			switch action {
			case ActionInventory:
				return Command{Action: ActionInventory}, nil
			case ActionLook:
				return Command{Action: ActionLook}, nil
			}
		}
		// A bare exit name means "go there".
		for _, name := range exits {
			if word == strings.ToLower(name) {
				return Command{Action: ActionGo, Target: name}, nil
			}
		}
	}

	verb, target, indirect := splitCommand(words)

	if action, ok := canonicalAction(verb); ok {
		if action == ActionInventory {
			return Command{Action: ActionInventory}, nil
		}
		if action == ActionLook && target == "" {
			return Command{Action: ActionLook}, nil
		}
		cmd := Command{Action: action, Target: target, IndirectTarget: indirect}
		// "look" is reserved for the whole scene; a targeted look is an
		// examination.
		if cmd.Action == ActionLook && cmd.Target != "" {
			cmd.Action = ActionExamine
		}
		return cmd, nil
	}

	// Unknown verb: recover "go" intent when the input mentions a
	// visible exit.
	for _, name := range exits {
		if strings.Contains(lower, strings.ToLower(name)) {
			return Command{Action: ActionGo, Target: name}, nil
		}
	}

	return Command{Action: ActionInvalid, OriginalInput: input}, nil
}

// splitCommand divides tokens into verb, target, and indirect target
// at the first preposition.
func splitCommand(words []string) (verb, target, indirect string) {
	verb = words[0]
	prepIndex := -1
	for i := 1; i < len(words); i++ {
		if prepositions[words[i]] {
			prepIndex = i
			break
		}
	}
	if prepIndex < 0 {
		if len(words) > 1 {
			target = strings.Join(words[1:], " ")
		}
		return verb, target, ""
	}
	if prepIndex > 1 {
		target = strings.Join(words[1:prepIndex], " ")
	}
	if prepIndex < len(words)-1 {
		indirect = strings.Join(words[prepIndex+1:], " ")
	}
	return verb, target, indirect
}

func canonicalAction(token string) (Action, bool) {
	for _, action := range canonicalOrder {
		for _, synonym := range verbSynonyms[action] {
			if synonym == token {
				return action, true
			}
		}
	}
	return "", false
}

// visibleExitNames returns the currently visible exit names in sorted
// order so that substring recovery is deterministic.
func visibleExitNames(scene *game.Scene, player *game.Player) []string {
	if scene == nil || player == nil {
		return nil
	}
	visible := scene.VisibleExits(player.Flags())
	names := make([]string, 0, len(visible))
	for name := range visible {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
