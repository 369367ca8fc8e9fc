package game

import "gopkg.in/yaml.v3"

// Item is a portable (or fixed) thing defined by an item YAML file.
// Raw keeps the full source document for author fields the engine does
// not model.
type Item struct {
	ID          string
	Name        string
	Description string
	Takeable    bool
	Weight      float64
	Examination Examination
	Effects     map[string]Effect
	Raw         map[string]any
}

// Examination is the close-inspection text: either a plain string or a
// {text: ...} mapping in the source.
type Examination struct {
	Text string `yaml:"text"`
}

func (e *Examination) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&e.Text)
	}
	type plain Examination
	return node.Decode((*plain)(e))
}

// Effect is what happens when an item is used, keyed by "use" or
// "use_on_<target>".
type Effect struct {
	Message  string   `yaml:"message"`
	FlagsSet []string `yaml:"flags_set"`
}

func (it *Item) UnmarshalYAML(node *yaml.Node) error {
	var doc struct {
		ID          string            `yaml:"id"`
		Name        string            `yaml:"name"`
		Description string            `yaml:"description"`
		Takeable    *bool             `yaml:"takeable"`
		Weight      float64           `yaml:"weight"`
		Examination Examination       `yaml:"examination"`
		Effects     map[string]Effect `yaml:"effects"`
	}
	if err := node.Decode(&doc); err != nil {
		return err
	}
	if err := node.Decode(&it.Raw); err != nil {
		return err
	}
	it.ID = doc.ID
	it.Name = doc.Name
	it.Description = doc.Description
	it.Takeable = doc.Takeable == nil || *doc.Takeable
	it.Weight = doc.Weight
	it.Examination = doc.Examination
	it.Effects = doc.Effects
	return nil
}

// DisplayName returns the item's name, falling back to its id.
func (it *Item) DisplayName() string {
	if it.Name != "" {
		return it.Name
	}
	return it.ID
}

// ExaminationText returns the close-inspection text, falling back to
// the short description.
func (it *Item) ExaminationText() string {
	if it.Examination.Text != "" {
		return it.Examination.Text
	}
	return it.Description
}

// EffectFor returns the effect declared under the given key.
func (it *Item) EffectFor(key string) (Effect, bool) {
	effect, ok := it.Effects[key]
	return effect, ok
}
