package input

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// BindingEntry maps one named action to the keys that trigger it.
type BindingEntry struct {
	Action string   `yaml:"action"`
	Keys   []string `yaml:"keys"`
}

type bindingListFile struct {
	Bindings []BindingEntry `yaml:"bindings"`
}

// BindingTable holds action bindings indexed by action name.
type BindingTable struct {
	actions map[string][]Key
}

// LoadBindingTable reads a YAML binding list. A missing file yields the
// built-in defaults.
func LoadBindingTable(path string) (*BindingTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultBindings(), nil
		}
		return nil, fmt.Errorf("read bindings %s: %w", path, err)
	}
	var f bindingListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse bindings %s: %w", path, err)
	}
	return NewBindingTable(f.Bindings)
}

func NewBindingTable(entries []BindingEntry) (*BindingTable, error) {
	t := &BindingTable{actions: make(map[string][]Key, len(entries))}
	for _, e := range entries {
		if e.Action == "" {
			return nil, fmt.Errorf("binding with empty action")
		}
		for _, name := range e.Keys {
			k, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", e.Action, err)
			}
			t.actions[e.Action] = append(t.actions[e.Action], k)
		}
	}
	return t, nil
}

// DefaultBindings mirrors data/yaml/input_bindings.yaml.
func DefaultBindings() *BindingTable {
	t, _ := NewBindingTable([]BindingEntry{
		{Action: "move_forward", Keys: []string{"w", "up"}},
		{Action: "move_back", Keys: []string{"s", "down"}},
		{Action: "move_left", Keys: []string{"a"}},
		{Action: "move_right", Keys: []string{"d"}},
		{Action: "turn_left", Keys: []string{"left"}},
		{Action: "turn_right", Keys: []string{"right"}},
		{Action: "jump", Keys: []string{"space"}},
		{Action: "interact", Keys: []string{"e"}},
		{Action: "reload_scene", Keys: []string{"r"}},
		{Action: "pause", Keys: []string{"escape"}},
		{Action: "quit", Keys: []string{"q"}},
		{Action: "toggle_debug", Keys: []string{"f1"}},
		{Action: "toggle_play", Keys: []string{"p"}},
	})
	return t
}

func (t *BindingTable) Keys(action string) []Key { return t.actions[action] }

func (t *BindingTable) Count() int { return len(t.actions) }

// Actions returns the bound action names sorted.
func (t *BindingTable) Actions() []string {
	out := make([]string, 0, len(t.actions))
	for a := range t.actions {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
