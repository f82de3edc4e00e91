// Package hotkeys holds the manager's fixed key bindings and matches
// key presses against them.
package hotkeys

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// Action is what a key binding does.
type Action int

const (
	ActionNone Action = iota
	ActionSpawnTerminal
	ActionClose
	ActionCycleFocus
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionSpawnTerminal:
		return "spawn-terminal"
	case ActionClose:
		return "close"
	case ActionCycleFocus:
		return "cycle-focus"
	default:
		return "none"
	}
}

// Scope says which window a binding is grabbed on.
type Scope int

const (
	// ScopeRoot bindings are grabbed once on the root window.
	ScopeRoot Scope = iota
	// ScopeClient bindings are grabbed on every managed application window.
	ScopeClient
)

// Binding is one parsed key binding.
type Binding struct {
	Action   Action
	Scope    Scope
	Sequence string
	Mods     uint16
	Key      string
}

var modifiers = map[string]uint16{
	"shift":   xproto.ModMaskShift,
	"lock":    xproto.ModMaskLock,
	"control": xproto.ModMaskControl,
	"ctrl":    xproto.ModMaskControl,
	"mod1":    xproto.ModMask1,
	"mod2":    xproto.ModMask2,
	"mod3":    xproto.ModMask3,
	"mod4":    xproto.ModMask4,
	"mod5":    xproto.ModMask5,
}

// ParseSequence splits a sequence such as "Mod1-Control-t" into its modifier
// mask and key name. The syntax is the one xgbutil's keybind package accepts.
func ParseSequence(seq string) (uint16, string, error) {
	parts := strings.Split(strings.TrimSpace(seq), "-")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return 0, "", fmt.Errorf("key sequence %q has no key", seq)
	}

	var mods uint16
	for _, part := range parts[:len(parts)-1] {
		mask, ok := modifiers[strings.ToLower(part)]
		if !ok {
			return 0, "", fmt.Errorf("key sequence %q: unknown modifier %q", seq, part)
		}
		mods |= mask
	}
	return mods, parts[len(parts)-1], nil
}

// Table is the full set of bindings plus the modifier bits that matching
// disregards (CapsLock, NumLock, ScrollLock).
type Table struct {
	bindings []Binding
	ignored  uint16
}

// Keys names the sequence for each action.
type Keys struct {
	SpawnTerminal string
	Close         string
	CycleFocus    string
}

// NewTable parses the fixed bindings.
func NewTable(keys Keys) (*Table, error) {
	specs := []struct {
		action Action
		scope  Scope
		seq    string
	}{
		{ActionSpawnTerminal, ScopeRoot, keys.SpawnTerminal},
		{ActionClose, ScopeClient, keys.Close},
		{ActionCycleFocus, ScopeClient, keys.CycleFocus},
	}

	t := &Table{ignored: xproto.ModMaskLock | xproto.ModMask2}
	for _, spec := range specs {
		mods, key, err := ParseSequence(spec.seq)
		if err != nil {
			return nil, fmt.Errorf("%s binding: %w", spec.action, err)
		}
		t.bindings = append(t.bindings, Binding{
			Action:   spec.action,
			Scope:    spec.scope,
			Sequence: spec.seq,
			Mods:     mods,
			Key:      key,
		})
	}
	return t, nil
}

// SetIgnored replaces the set of modifier bits that matching disregards.
func (t *Table) SetIgnored(mask uint16) {
	t.ignored = mask
}

// Ignored returns the modifier bits that matching disregards.
func (t *Table) Ignored() uint16 {
	return t.ignored
}

// Scoped returns the bindings grabbed on windows of the given scope.
func (t *Table) Scoped(s Scope) []Binding {
	var out []Binding
	for _, b := range t.bindings {
		if b.Scope == s {
			out = append(out, b)
		}
	}
	return out
}

// Match returns the action bound to the modifier state and key name of a
// key press, or ActionNone. Key names compare case-insensitively so that a
// Shift-altered keysym still matches.
func (t *Table) Match(state uint16, key string) Action {
	// Only the eight modifier bits matter; pointer button bits are dropped.
	mods := state & 0xff &^ t.ignored
	for _, b := range t.bindings {
		if b.Mods&^t.ignored == mods && strings.EqualFold(b.Key, key) {
			return b.Action
		}
	}
	return ActionNone
}
