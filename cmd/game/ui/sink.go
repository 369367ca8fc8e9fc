package ui

import "fmt"

type lineKind int

const (
	kindNarrate lineKind = iota
	kindTitle
	kindInfo
	kindError
	kindUser
	kindSpeech
	kindOption
	kindBlank
)

type line struct {
	kind lineKind
	text string
}

// collectSink gathers one turn's engine output. The engine writes to it
// synchronously inside a tea.Cmd; the update loop takes the lines when
// the turn message arrives. Turns are serialized by the loading gate.
type collectSink struct {
	lines []line
}

func (s *collectSink) reset() {
	s.lines = nil
}

func (s *collectSink) take() []line {
	lines := s.lines
	s.lines = nil
	return lines
}

func (s *collectSink) Title(text string) {
	s.lines = append(s.lines, line{kindTitle, text}, line{kindBlank, ""})
}

func (s *collectSink) Narrate(text string) {
	s.lines = append(s.lines, line{kindNarrate, text}, line{kindBlank, ""})
}

func (s *collectSink) Info(text string) {
	s.lines = append(s.lines, line{kindInfo, text})
}

func (s *collectSink) Error(text string) {
	s.lines = append(s.lines, line{kindError, text})
}

func (s *collectSink) List(header string, items []string) {
	s.lines = append(s.lines, line{kindInfo, header})
	for _, item := range items {
		s.lines = append(s.lines, line{kindInfo, "  - " + item})
	}
	s.lines = append(s.lines, line{kindBlank, ""})
}

func (s *collectSink) DialoguePrompt(speaker, text string, options []string) {
	s.lines = append(s.lines, line{kindSpeech, fmt.Sprintf("%s: %q", speaker, text)}, line{kindBlank, ""})
	for i, option := range options {
		s.lines = append(s.lines, line{kindOption, fmt.Sprintf("%d. %s", i+1, option)})
	}
	s.lines = append(s.lines, line{kindOption, "Choose a number."})
}
