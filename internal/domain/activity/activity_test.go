package activity

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Activity
	}{
		{"baseball", Baseball},
		{"  Volleyball ", Volleyball},
		{"KBO", Baseball},
		{"olympics", International},
		{"volley", Volleyball},
		{"inter", International},
		{"basebal", Baseball},
		{"voleyball", Volleyball},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q: unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "cricket", "zz"} {
		if _, err := Parse(in); !errors.Is(err, ErrUnknownActivity) {
			t.Fatalf("parse %q: expected ErrUnknownActivity, got %v", in, err)
		}
	}
}

func TestValidAndOrder(t *testing.T) {
	for _, a := range All() {
		if !a.Valid() {
			t.Fatalf("expected %s to be valid", a)
		}
		if a.DisplayName() == "" {
			t.Fatalf("expected display name for %s", a)
		}
	}
	if Activity("cricket").Valid() {
		t.Fatal("expected cricket to be invalid")
	}
	ordered := Ordered()
	if len(ordered) != 2 || ordered[0] != Baseball || ordered[1] != Volleyball {
		t.Fatalf("unexpected order %v", ordered)
	}
	if !Default.Valid() {
		t.Fatal("default must be a tracked activity")
	}
}
