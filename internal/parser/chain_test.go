package parser

import (
	"context"
	"errors"
	"io"
	"testing"

	"fable/internal/debug"
	"fable/internal/game"
)

type stubBackend struct {
	name string
	cmd  Command
	err  error
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Parse(context.Context, string, *game.Scene, *game.Player) (Command, error) {
	return s.cmd, s.err
}

func TestChainFallsThroughToRule(t *testing.T) {
	failing := &stubBackend{name: "local", err: errors.New("connection refused")}
	chain := NewChain(debug.NewWriterLogger(io.Discard), failing)

	cmd, backend := chain.Parse(context.Background(), "examine lamp", ruleScene(), game.NewPlayer())
	if backend != "rule" {
		t.Fatalf("backend = %q, want rule", backend)
	}
	if cmd.Action != ActionExamine || cmd.Target != "lamp" {
		t.Errorf("cmd = %+v, want examine lamp", cmd)
	}
}

func TestChainUsesFirstSuccess(t *testing.T) {
	want := Command{Action: ActionGo, Target: "library_door"}
	first := &stubBackend{name: "local", cmd: want}
	second := &stubBackend{name: "api", err: errors.New("should not be reached")}
	chain := NewChain(debug.NewWriterLogger(io.Discard), first, second)

	cmd, backend := chain.Parse(context.Background(), "go to the library", ruleScene(), game.NewPlayer())
	if backend != "local" {
		t.Fatalf("backend = %q, want local", backend)
	}
	if cmd != want {
		t.Errorf("cmd = %+v, want %+v", cmd, want)
	}
}

func TestChainRuleOnly(t *testing.T) {
	chain := NewChain(debug.NewWriterLogger(io.Discard))
	cmd, backend := chain.Parse(context.Background(), "take rusty key", ruleScene(), game.NewPlayer())
	if backend != "rule" {
		t.Fatalf("backend = %q, want rule", backend)
	}
	if cmd.Action != ActionTake || cmd.Target != "rusty key" {
		t.Errorf("cmd = %+v", cmd)
	}
}

func TestExtractCommand(t *testing.T) {
	reply := "Sure! Here is the command:\n```json\n{\"action\": \"examine\", \"target\": \"lamp\"}\n```"
	cmd, err := ExtractCommand(reply)
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Action != ActionExamine || cmd.Target != "lamp" {
		t.Errorf("cmd = %+v", cmd)
	}
}

func TestExtractCommandErrors(t *testing.T) {
	cases := map[string]string{
		"no braces":      "go north",
		"malformed json": `{"action": "go",}`,
		"missing action": `{"target": "lamp"}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ExtractCommand(reply); err == nil {
				t.Errorf("ExtractCommand(%q) succeeded, want error", reply)
			}
		})
	}
}
