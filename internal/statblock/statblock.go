// Package statblock derives the display fields of a monster stat card from
// its raw stored values: ability modifiers, save bonuses, challenge-rating
// XP, and the card layout.
package statblock

import (
	"fmt"
	"strings"
)

// Modifier computes the standard ability modifier floor((score-10)/2).
// A zero score is treated as the default 10.
func Modifier(score int) int {
	if score == 0 {
		score = 10
	}
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// FormatModifier renders a modifier with an explicit sign; zero is "+0".
func FormatModifier(mod int) string {
	return fmt.Sprintf("%+d", mod)
}

// Ability pairs a score with its formatted modifier and save bonus for
// template rendering.
type Ability struct {
	Name  string
	Score int
	Mod   string
	Save  string
}

// DeriveAbility builds the display pair for one ability. The save bonus
// adds the proficiency bonus when the ability's abbreviation appears in the
// monster's saving-throws list.
func DeriveAbility(name string, score, proficiencyBonus int, savingThrows string) Ability {
	if score == 0 {
		score = 10
	}
	mod := Modifier(score)
	save := mod
	if hasSaveProficiency(savingThrows, name) {
		save += proficiencyBonus
	}
	return Ability{
		Name:  name,
		Score: score,
		Mod:   FormatModifier(mod),
		Save:  FormatModifier(save),
	}
}

// hasSaveProficiency reports whether an ability abbreviation leads any
// segment of the saving-throws list ("DEX" matches "Dex +5").
func hasSaveProficiency(savingThrows, ability string) bool {
	for _, seg := range SplitList(savingThrows) {
		fields := strings.Fields(seg)
		if len(fields) > 0 && strings.EqualFold(fields[0], ability) {
			return true
		}
	}
	return false
}

// SplitList splits a comma-delimited field, trimming each segment and
// discarding empties.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// xpByCR is the fixed 5e challenge-rating to XP reward table.
var xpByCR = map[string]int{
	"0": 10, "1/8": 25, "1/4": 50, "1/2": 100,
	"1": 200, "2": 450, "3": 700, "4": 1100, "5": 1800,
	"6": 2300, "7": 2900, "8": 3900, "9": 5000, "10": 5900,
	"11": 7200, "12": 8400, "13": 10000, "14": 11500, "15": 13000,
	"16": 15000, "17": 18000, "18": 20000, "19": 22000, "20": 25000,
	"21": 33000, "22": 41000, "23": 50000, "24": 62000, "25": 75000,
	"26": 90000, "27": 105000, "28": 120000, "29": 135000, "30": 155000,
}

// XPForCR looks up the XP reward for a challenge rating. Unrecognized
// ratings report ok=false rather than an error; the card simply omits the
// XP line.
func XPForCR(cr string) (int, bool) {
	xp, ok := xpByCR[strings.TrimSpace(cr)]
	return xp, ok
}

// Layout selects the card layout. An explicit card_size wins; the legacy
// is_legendary flag is consulted only for rows written before card_size
// existed.
func Layout(cardSize string, isLegendary bool) string {
	switch cardSize {
	case "boss", "small":
		return cardSize
	}
	if isLegendary {
		return "boss"
	}
	return "small"
}
