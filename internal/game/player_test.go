package game

import (
	"reflect"
	"testing"
)

func TestPlayerInventory(t *testing.T) {
	p := NewPlayer()

	p.AddItem("lamp")
	p.AddItem("rope")
	p.AddItem("lamp") // duplicate, no-op

	if got := p.Inventory(); !reflect.DeepEqual(got, []string{"lamp", "rope"}) {
		t.Errorf("inventory = %v", got)
	}
	if !p.HasItem("rope") {
		t.Error("expected rope in inventory")
	}
	if !p.RemoveItem("lamp") {
		t.Error("expected removal of held item to succeed")
	}
	if p.RemoveItem("lamp") {
		t.Error("expected second removal to fail")
	}
	if got := p.Inventory(); !reflect.DeepEqual(got, []string{"rope"}) {
		t.Errorf("inventory after removal = %v", got)
	}
}

func TestPlayerFlags(t *testing.T) {
	p := NewPlayer()

	p.AddFlag("met_elder")
	p.AddFlag("met_elder")
	if !p.HasFlag("met_elder") {
		t.Error("expected flag to be set")
	}
	if len(p.Flags()) != 1 {
		t.Errorf("re-adding a flag should be a no-op, got %v", p.Flags())
	}
	p.RemoveFlag("met_elder")
	if p.HasFlag("met_elder") {
		t.Error("expected flag to be cleared")
	}
}

func TestPlayerQuests(t *testing.T) {
	p := NewPlayer()

	p.StartQuest("manor", Quest{Description: "Find the hidden study."})
	p.StartQuest("manor", Quest{Title: "Overwrite attempt"})

	active := p.ActiveQuests()
	if len(active) != 1 {
		t.Fatalf("active quests = %d", len(active))
	}
	if active["manor"].Title != "manor" {
		t.Errorf("quest title should default to id, got %q", active["manor"].Title)
	}

	p.UpdateQuestProgress("manor", "find_study", true)
	if got := active["manor"].Progress["find_study"]; got != true {
		t.Errorf("quest progress = %v", got)
	}

	p.CompleteQuest("manor")
	if len(p.ActiveQuests()) != 0 {
		t.Error("completed quest still active")
	}
	if len(p.CompletedQuests()) != 1 {
		t.Error("completed quest missing from completed set")
	}
}

func TestPlayerStats(t *testing.T) {
	p := NewPlayer()
	p.SetStat("courage", 3)
	if v, ok := p.Stat("courage"); !ok || v != 3 {
		t.Errorf("stat = %v, %v", v, ok)
	}
	if _, ok := p.Stat("luck"); ok {
		t.Error("unset stat reported present")
	}
}
