package engine

// Sink receives the engine's narrative output. The terminal UI renders
// each kind with its own styling; tests collect them as plain lines.
type Sink interface {
	// Title announces a scene or section heading.
	Title(text string)
	// Narrate prints story prose.
	Narrate(text string)
	// Info prints out-of-world information, like inventory changes.
	Info(text string)
	// Error prints a player-facing failure.
	Error(text string)
	// List prints a header followed by bulleted lines.
	List(header string, lines []string)
	// DialoguePrompt presents a character's line and numbered options,
	// and signals the UI to collect a numeric choice next.
	DialoguePrompt(speaker, text string, options []string)
}
