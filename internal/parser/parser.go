// Package parser turns free-form player text into structured commands.
// Backends are tried in priority order; the deterministic rule-based
// backend always sits last in the chain and cannot fail.
package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fable/internal/debug"
	"fable/internal/game"
)

// Action is a canonical command verb.
type Action string

const (
	ActionLook         Action = "look"
	ActionExamine      Action = "examine"
	ActionGo           Action = "go"
	ActionTake         Action = "take"
	ActionUse          Action = "use"
	ActionTalk         Action = "talk"
	ActionInventory    Action = "inventory"
	ActionDrop         Action = "drop"
	ActionEat          Action = "eat"
	ActionDrink        Action = "drink"
	ActionPush         Action = "push"
	ActionPull         Action = "pull"
	ActionSearch       Action = "search"
	ActionOpen         Action = "open"
	ActionClose        Action = "close"
	ActionTriggerEvent Action = "trigger_event"
	ActionInvalid      Action = "invalid"
)

// Command is the structured result of parsing one line of input.
type Command struct {
	Action         Action `json:"action"`
	Target         string `json:"target,omitempty"`
	IndirectTarget string `json:"indirect_target,omitempty"`
	EventID        string `json:"event_id,omitempty"`
	OriginalInput  string `json:"original_input,omitempty"`
}

// Backend is one strategy for parsing input. Parse receives the
// current scene and player read-only, for context.
type Backend interface {
	Name() string
	Parse(ctx context.Context, input string, scene *game.Scene, player *game.Player) (Command, error)
}

// Chain tries backends in order, falling through on any error. The
// rule-based backend is appended last unconditionally.
type Chain struct {
	backends []Backend
	dbg      *debug.Logger
}

func NewChain(dbg *debug.Logger, primary ...Backend) *Chain {
	backends := append([]Backend{}, primary...)
	backends = append(backends, NewRuleBackend())
	return &Chain{backends: backends, dbg: dbg}
}

// Parse never fails; it returns the first backend's result along with
// that backend's name.
func (c *Chain) Parse(ctx context.Context, input string, scene *game.Scene, player *game.Player) (Command, string) {
	for _, backend := range c.backends {
		cmd, err := backend.Parse(ctx, input, scene, player)
		if err != nil {
			c.dbg.Printf("parser backend %q failed: %v; falling through", backend.Name(), err)
			continue
		}
		return cmd, backend.Name()
	}
	// Unreachable: the rule backend never returns an error.
	return Command{Action: ActionInvalid, OriginalInput: input}, ruleBackendName
}

// ExtractCommand pulls a command out of a raw model reply: slice from
// the first '{' to the last '}', parse as JSON, require an action key.
func ExtractCommand(reply string) (Command, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return Command{}, fmt.Errorf("no JSON object in reply %q", reply)
	}
	var cmd Command
	if err := json.Unmarshal([]byte(reply[start:end+1]), &cmd); err != nil {
		return Command{}, fmt.Errorf("parsing model reply: %w", err)
	}
	if cmd.Action == "" {
		return Command{}, fmt.Errorf("model reply has no action key: %q", reply)
	}
	return cmd, nil
}
