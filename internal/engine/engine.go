// Package engine runs the game loop: it parses player input into
// commands, dispatches them against the world state, and narrates the
// results through a Sink.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fable/internal/debug"
	"fable/internal/game"
	"fable/internal/logging"
	"fable/internal/parser"
)

// Status reports whether the session continues after a turn.
type Status int

const (
	StatusRunning Status = iota
	StatusQuit
)

// pendingDialogue holds an open conversation: the next input line is a
// numbered choice, not a command.
type pendingDialogue struct {
	speaker  string
	dialogue game.Dialogue
}

type Engine struct {
	world  *game.World
	player *game.Player
	scene  *game.Scene
	chain  *parser.Chain
	sink   Sink
	dbg    *debug.Logger

	transcript *logging.TranscriptLogger
	sessionID  string
	tracer     trace.Tracer

	dialogue *pendingDialogue
	turnLog  []string
}

// New wires an engine over a loaded world. The starting scene has
// already been validated by the loader.
func New(world *game.World, chain *parser.Chain, sink Sink, dbg *debug.Logger) *Engine {
	return &Engine{
		world:     world,
		player:    game.NewPlayer(),
		scene:     world.Scenes[world.StartingScene],
		chain:     chain,
		sink:      sink,
		dbg:       dbg,
		sessionID: uuid.NewString(),
		tracer:    otel.Tracer("engine"),
	}
}

// AttachTranscript enables per-turn transcript logging.
func (e *Engine) AttachTranscript(tl *logging.TranscriptLogger) {
	e.transcript = tl
}

// SessionID identifies this playthrough in the transcript database.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Player exposes the live player state, for UIs that show it.
func (e *Engine) Player() *game.Player {
	return e.player
}

// Start narrates the opening: banner, title, and the starting scene.
func (e *Engine) Start() {
	e.turnLog = e.turnLog[:0]
	if e.world.Banner != "" {
		e.narrate(e.world.Banner)
	}
	if e.world.Title != "" {
		e.title(e.world.Title)
	}
	if e.world.Description != "" {
		e.narrate(e.world.Description)
	}
	e.renderScene()
}

// HandleInput runs one turn. It never panics: a handler failure is
// reported to the player and the session continues.
func (e *Engine) HandleInput(ctx context.Context, raw string) Status {
	e.turnLog = e.turnLog[:0]

	if e.dialogue != nil {
		e.handleDialogueChoice(raw)
		return StatusRunning
	}

	input := strings.TrimSpace(raw)
	if input == "" {
		return StatusRunning
	}

	switch strings.ToLower(input) {
	case "quit", "exit", "q":
		e.narrate("Goodbye!")
		return StatusQuit
	}

	ctx, span := e.tracer.Start(ctx, "engine.turn",
		trace.WithAttributes(
			attribute.String("game.scene", e.scene.ID),
			attribute.String("game.input", input),
		),
	)
	defer span.End()

	sceneBefore := e.scene.ID
	start := time.Now()
	cmd, backend := e.chain.Parse(ctx, input, e.scene, e.player)
	span.SetAttributes(
		attribute.String("parser.backend", backend),
		attribute.String("parser.action", string(cmd.Action)),
	)
	e.dbg.Printf("parsed %q via %s: %+v", input, backend, cmd)

	e.dispatch(cmd)

	if e.transcript != nil {
		output := strings.Join(e.turnLog, "\n")
		if err := e.transcript.LogTurn(e.sessionID, sceneBefore, input, backend, cmd, output, time.Since(start)); err != nil {
			e.dbg.Printf("transcript log failed: %v", err)
		}
	}
	return StatusRunning
}

// dispatch routes one parsed command to its handler, absorbing panics
// so a bad handler can't take down the session.
func (e *Engine) dispatch(cmd parser.Command) {
	defer func() {
		if r := recover(); r != nil {
			e.dbg.Printf("handler panic for %+v: %v", cmd, r)
			e.errorf("Something went wrong handling that command.")
		}
	}()

	// Phrasings like "talk to greta" or "go to the study" leave the
	// noun after the preposition; for single-object verbs it is the
	// target.
	target := cmd.Target
	if target == "" {
		target = cmd.IndirectTarget
	}

	switch cmd.Action {
	case parser.ActionLook:
		e.renderScene()
	case parser.ActionExamine:
		e.handleExamine(target)
	case parser.ActionGo:
		e.handleGo(target)
	case parser.ActionTake:
		e.handleTake(target)
	case parser.ActionDrop:
		e.handleDrop(target)
	case parser.ActionUse:
		e.handleUse(cmd.Target, cmd.IndirectTarget)
	case parser.ActionTalk:
		e.handleTalk(target)
	case parser.ActionInventory:
		e.handleInventory()
	case parser.ActionEat, parser.ActionDrink, parser.ActionPush,
		parser.ActionPull, parser.ActionOpen, parser.ActionClose:
		e.handleInteraction(string(cmd.Action), cmd.Target, cmd.IndirectTarget)
	case parser.ActionSearch:
		e.handleSearch(target)
	case parser.ActionTriggerEvent:
		e.handleTriggerEvent(cmd.EventID)
	default:
		if cmd.OriginalInput != "" {
			e.errorf("I don't understand %q.", cmd.OriginalInput)
		} else {
			e.errorf("I don't understand that.")
		}
	}
}

// renderScene narrates the current scene: resolved description, then
// sorted exits, objects, and characters.
func (e *Engine) renderScene() {
	flags := e.player.Flags()
	e.title(e.scene.Name)
	e.narrate(e.scene.GetDescription(flags))

	exits := e.scene.VisibleExits(flags)
	if len(exits) > 0 {
		names := sortedKeys(exits)
		lines := make([]string, len(names))
		for i, name := range names {
			lines[i] = fmt.Sprintf("%s: %s", name, exits[name].Description)
		}
		e.list("Exits:", lines)
	}

	objects := e.scene.VisibleObjects(flags)
	if len(objects) > 0 {
		e.list("You can see:", sortedKeys(objects))
	}

	var present []string
	for id, presence := range e.scene.Characters {
		if presence.Holds(flags) {
			name := id
			if ch, ok := e.world.Characters[id]; ok {
				name = ch.DisplayName()
			}
			present = append(present, name)
		}
	}
	if len(present) > 0 {
		sort.Strings(present)
		e.list("Also here:", present)
	}
}

// Output helpers mirror the Sink and keep a plain-text copy of the
// turn for the transcript.

func (e *Engine) title(text string) {
	e.turnLog = append(e.turnLog, text)
	e.sink.Title(text)
}

func (e *Engine) narrate(text string) {
	e.turnLog = append(e.turnLog, text)
	e.sink.Narrate(text)
}

func (e *Engine) info(text string) {
	e.turnLog = append(e.turnLog, text)
	e.sink.Info(text)
}

func (e *Engine) errorf(format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	e.turnLog = append(e.turnLog, text)
	e.sink.Error(text)
}

func (e *Engine) list(header string, lines []string) {
	e.turnLog = append(e.turnLog, header)
	for _, line := range lines {
		e.turnLog = append(e.turnLog, "- "+line)
	}
	e.sink.List(header, lines)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
