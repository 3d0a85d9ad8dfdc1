package statblock

import (
	"math"
	"reflect"
	"testing"
)

func TestModifierMatchesFloorFormula(t *testing.T) {
	for s := 1; s <= 30; s++ {
		want := int(math.Floor(float64(s-10) / 2))
		if got := Modifier(s); got != want {
			t.Errorf("Modifier(%d) = %d, want %d", s, got, want)
		}
	}
}

func TestModifierKnownValues(t *testing.T) {
	cases := map[int]int{16: 3, 10: 0, 8: -1, 1: -5, 30: 10, 0: 0}
	for score, want := range cases {
		if got := Modifier(score); got != want {
			t.Errorf("Modifier(%d) = %d, want %d", score, got, want)
		}
	}
}

func TestFormatModifier(t *testing.T) {
	cases := map[int]string{3: "+3", 0: "+0", -1: "-1", 10: "+10"}
	for mod, want := range cases {
		if got := FormatModifier(mod); got != want {
			t.Errorf("FormatModifier(%d) = %q, want %q", mod, got, want)
		}
	}
}

func TestXPForCR(t *testing.T) {
	if xp, ok := XPForCR("1/2"); !ok || xp != 100 {
		t.Errorf("XPForCR(1/2) = %d, %v; want 100, true", xp, ok)
	}
	if xp, ok := XPForCR("5"); !ok || xp != 1800 {
		t.Errorf("XPForCR(5) = %d, %v; want 1800, true", xp, ok)
	}
	if _, ok := XPForCR("unknown"); ok {
		t.Error("XPForCR(unknown) should not be found")
	}
	if xp, ok := XPForCR(" 1/8 "); !ok || xp != 25 {
		t.Errorf("XPForCR should trim whitespace, got %d, %v", xp, ok)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("Perception +5, , Stealth +3 ,")
	want := []string{"Perception +5", "Stealth +3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}
	if got := SplitList(""); got != nil {
		t.Errorf("SplitList(\"\") = %v, want nil", got)
	}
}

func TestLayout(t *testing.T) {
	cases := []struct {
		cardSize    string
		isLegendary bool
		want        string
	}{
		{"boss", false, "boss"},
		{"small", true, "small"}, // explicit card_size wins over the legacy flag
		{"", true, "boss"},
		{"", false, "small"},
		{"bogus", true, "boss"},
	}
	for _, tc := range cases {
		if got := Layout(tc.cardSize, tc.isLegendary); got != tc.want {
			t.Errorf("Layout(%q, %v) = %q, want %q", tc.cardSize, tc.isLegendary, got, tc.want)
		}
	}
}

func TestDeriveAbilitySaveProficiency(t *testing.T) {
	a := DeriveAbility("DEX", 16, 4, "Dex +7, Con +9")
	if a.Mod != "+3" {
		t.Errorf("Mod = %q, want +3", a.Mod)
	}
	if a.Save != "+7" {
		t.Errorf("Save = %q, want +7 (modifier plus proficiency)", a.Save)
	}

	b := DeriveAbility("STR", 16, 4, "Dex +7")
	if b.Save != "+3" {
		t.Errorf("non-proficient Save = %q, want +3", b.Save)
	}

	c := DeriveAbility("WIS", 0, 2, "")
	if c.Score != 10 || c.Mod != "+0" {
		t.Errorf("missing score should default to 10/+0, got %d/%s", c.Score, c.Mod)
	}
}
