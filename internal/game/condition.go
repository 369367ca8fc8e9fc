package game

// Condition gates content on the player's flag set. The zero value is
// vacuously true.
type Condition struct {
	HasFlags   []string `yaml:"has_flags"`
	LacksFlags []string `yaml:"lacks_flags"`
}

// Met reports whether every required flag is present and no forbidden
// flag is set.
func (c Condition) Met(flags map[string]bool) bool {
	for _, f := range c.HasFlags {
		if !flags[f] {
			return false
		}
	}
	for _, f := range c.LacksFlags {
		if flags[f] {
			return false
		}
	}
	return true
}
