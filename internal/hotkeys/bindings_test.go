package hotkeys

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

var defaultKeys = Keys{
	SpawnTerminal: "Mod1-Control-t",
	Close:         "Mod1-F4",
	CycleFocus:    "Mod1-Tab",
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		seq     string
		mods    uint16
		key     string
		wantErr bool
	}{
		{"Mod1-Control-t", xproto.ModMask1 | xproto.ModMaskControl, "t", false},
		{"Mod1-F4", xproto.ModMask1, "F4", false},
		{"mod4-shift-Return", xproto.ModMask4 | xproto.ModMaskShift, "Return", false},
		{"Tab", 0, "Tab", false},
		{"Mod1-", 0, "", true},
		{"Hyper-x", 0, "", true},
		{"", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			mods, key, err := ParseSequence(tt.seq)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSequence(%q) expected error", tt.seq)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSequence(%q) error: %v", tt.seq, err)
			}
			if mods != tt.mods || key != tt.key {
				t.Errorf("ParseSequence(%q) = %#x, %q; want %#x, %q", tt.seq, mods, key, tt.mods, tt.key)
			}
		})
	}
}

func TestTableMatch(t *testing.T) {
	table, err := NewTable(defaultKeys)
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}

	alt := uint16(xproto.ModMask1)
	tests := []struct {
		name  string
		state uint16
		key   string
		want  Action
	}{
		{"spawn", alt | xproto.ModMaskControl, "t", ActionSpawnTerminal},
		{"spawn with caps lock", alt | xproto.ModMaskControl | xproto.ModMaskLock, "T", ActionSpawnTerminal},
		{"close", alt, "F4", ActionClose},
		{"close with num lock", alt | xproto.ModMask2, "F4", ActionClose},
		{"cycle", alt, "Tab", ActionCycleFocus},
		{"cycle with button held", alt | xproto.KeyButMaskButton1, "Tab", ActionCycleFocus},
		{"missing modifier", 0, "Tab", ActionNone},
		{"extra modifier", alt | xproto.ModMaskShift, "F4", ActionNone},
		{"unbound key", alt, "F5", ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Match(tt.state, tt.key); got != tt.want {
				t.Errorf("Match(%#x, %q) = %s, want %s", tt.state, tt.key, got, tt.want)
			}
		})
	}
}

func TestTableScoped(t *testing.T) {
	table, err := NewTable(defaultKeys)
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	root := table.Scoped(ScopeRoot)
	if len(root) != 1 || root[0].Action != ActionSpawnTerminal {
		t.Fatalf("root bindings = %+v", root)
	}
	if client := table.Scoped(ScopeClient); len(client) != 2 {
		t.Fatalf("client bindings = %+v", client)
	}
}

func TestNewTable_RejectsBadSequence(t *testing.T) {
	keys := defaultKeys
	keys.Close = "Super-F4"
	if _, err := NewTable(keys); err == nil {
		t.Fatal("expected error for unknown modifier")
	}
}
