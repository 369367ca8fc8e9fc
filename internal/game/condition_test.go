package game

import "testing"

func TestConditionMet(t *testing.T) {
	flags := map[string]bool{"has_key": true, "met_elder": true}

	empty := Condition{}
	if !empty.Met(flags) {
		t.Error("empty condition should always be met")
	}
	if !empty.Met(map[string]bool{}) {
		t.Error("empty condition should be met against empty flags")
	}

	required := Condition{HasFlags: []string{"has_key"}}
	if !required.Met(flags) {
		t.Error("expected has_flags subset to be met")
	}
	if required.Met(map[string]bool{}) {
		t.Error("missing required flag should fail")
	}

	forbidden := Condition{LacksFlags: []string{"met_elder"}}
	if forbidden.Met(flags) {
		t.Error("present forbidden flag should fail")
	}
	if !forbidden.Met(map[string]bool{"has_key": true}) {
		t.Error("absent forbidden flag should pass")
	}

	both := Condition{HasFlags: []string{"has_key"}, LacksFlags: []string{"door_open"}}
	if !both.Met(flags) {
		t.Error("combined condition should be met")
	}
	flags["door_open"] = true
	if both.Met(flags) {
		t.Error("combined condition should fail once forbidden flag is set")
	}
}
