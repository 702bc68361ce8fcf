package cmd

import "testing"

func Test_ParsePos(t *testing.T) {
	pos, err := parsePos("42:+:17")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if pos.ID != 42 || pos.Rev || pos.Off != 17 {
		t.Errorf("parsed %+v, want node 42 forward offset 17", pos)
	}

	pos, err = parsePos("7:-:0")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if pos.ID != 7 || !pos.Rev || pos.Off != 0 {
		t.Errorf("parsed %+v, want node 7 reverse offset 0", pos)
	}

	for _, bad := range []string{"", "42", "42:+", "0:+:1", "x:+:1", "1:?:2", "1:+:-3", "1:+:y"} {
		if _, err := parsePos(bad); err == nil {
			t.Errorf("%q should fail to parse", bad)
		}
	}
}
