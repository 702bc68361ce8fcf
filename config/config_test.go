package config

import "testing"

// settings fall back to registered defaults when nothing else sets them
func Test_Defaults(t *testing.T) {
	c := New()

	if c.Extract.MaxLen != 10000 {
		t.Errorf("default max-len is %d, want 10000", c.Extract.MaxLen)
	}
	if c.Extract.IncludeTerminals || c.Extract.DetectCycles {
		t.Error("terminal and cycle settings should default to off")
	}
	if c.Server.Addr == "" {
		t.Error("server address should have a default")
	}
	if c.Set.Index == "" {
		t.Error("collection index path should have a default")
	}
}
