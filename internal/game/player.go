package game

// Player holds everything about the player that changes during a
// session: inventory, flags, quests, stats. It is created once at
// engine start and mutated only by the engine; nothing here is
// persisted.
type Player struct {
	inventory []string
	flags     map[string]bool
	quests    map[string]*Quest
	stats     map[string]any
}

// Quest tracks a multi-objective goal.
type Quest struct {
	Title       string
	Description string
	Objectives  []string
	Completed   bool
	Progress    map[string]any
}

func NewPlayer() *Player {
	return &Player{
		flags:  make(map[string]bool),
		quests: make(map[string]*Quest),
		stats:  make(map[string]any),
	}
}

// AddItem appends an item id to the inventory. Inventory entries are
// unique; re-adding is a no-op. Insertion order is preserved.
func (p *Player) AddItem(id string) {
	if p.HasItem(id) {
		return
	}
	p.inventory = append(p.inventory, id)
}

// RemoveItem removes an item id, reporting whether it was held.
func (p *Player) RemoveItem(id string) bool {
	for i, held := range p.inventory {
		if held == id {
			p.inventory = append(p.inventory[:i], p.inventory[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Player) HasItem(id string) bool {
	for _, held := range p.inventory {
		if held == id {
			return true
		}
	}
	return false
}

// Inventory returns a copy of the held item ids in insertion order.
func (p *Player) Inventory() []string {
	out := make([]string, len(p.inventory))
	copy(out, p.inventory)
	return out
}

func (p *Player) AddFlag(flag string)      { p.flags[flag] = true }
func (p *Player) RemoveFlag(flag string)   { delete(p.flags, flag) }
func (p *Player) HasFlag(flag string) bool { return p.flags[flag] }

// Flags returns the live flag set. Callers must treat it as read-only;
// mutation goes through AddFlag/RemoveFlag.
func (p *Player) Flags() map[string]bool { return p.flags }

// StartQuest registers a quest if not already started.
func (p *Player) StartQuest(id string, quest Quest) {
	if _, ok := p.quests[id]; ok {
		return
	}
	if quest.Title == "" {
		quest.Title = id
	}
	if quest.Progress == nil {
		quest.Progress = make(map[string]any)
	}
	p.quests[id] = &quest
}

// UpdateQuestProgress records progress on one objective of a started
// quest.
func (p *Player) UpdateQuestProgress(questID, objectiveID string, value any) {
	quest, ok := p.quests[questID]
	if !ok {
		return
	}
	if quest.Progress == nil {
		quest.Progress = make(map[string]any)
	}
	quest.Progress[objectiveID] = value
}

// CompleteQuest marks a started quest as completed.
func (p *Player) CompleteQuest(id string) {
	if quest, ok := p.quests[id]; ok {
		quest.Completed = true
	}
}

// ActiveQuests returns the started, not-yet-completed quests.
func (p *Player) ActiveQuests() map[string]*Quest {
	out := make(map[string]*Quest)
	for id, quest := range p.quests {
		if !quest.Completed {
			out[id] = quest
		}
	}
	return out
}

// CompletedQuests returns the completed quests.
func (p *Player) CompletedQuests() map[string]*Quest {
	out := make(map[string]*Quest)
	for id, quest := range p.quests {
		if quest.Completed {
			out[id] = quest
		}
	}
	return out
}

func (p *Player) SetStat(name string, value any) { p.stats[name] = value }

func (p *Player) Stat(name string) (any, bool) {
	value, ok := p.stats[name]
	return value, ok
}
