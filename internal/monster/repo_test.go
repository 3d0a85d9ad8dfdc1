package monster

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"monstermaker/pkg/database"
	"monstermaker/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO users(id, username, password_hash) VALUES('u1','u1','x'),('u2','u2','x')`); err != nil {
		t.Fatal(err)
	}
	return db
}

func sampleMonster() models.Monster {
	return models.Monster{
		ID:               "m1",
		OwnerID:          "u1",
		Name:             "Ancient Red Dragon",
		Size:             "Gargantuan",
		Type:             "dragon",
		Alignment:        "chaotic evil",
		ArmorClass:       22,
		ArmorNotes:       "natural armor",
		HitPoints:        546,
		HitDice:          "28d20 + 252",
		Speed:            "40 ft., climb 40 ft., fly 80 ft.",
		ProficiencyBonus: 7,
		Strength:         30, Dexterity: 10, Constitution: 29,
		Intelligence: 18, Wisdom: 15, Charisma: 23,
		SavingThrows:    "Dex +7, Con +16, Wis +9, Cha +13",
		Skills:          "Perception +16, Stealth +7",
		Senses:          "blindsight 60 ft., darkvision 120 ft.",
		ChallengeRating: "24",
		Traits: []models.Feature{
			{Name: "Legendary Resistance", Description: "If the dragon fails a saving throw, it can choose to succeed instead."},
		},
		Actions: []models.Feature{
			{Name: "Bite", Description: "Melee Weapon Attack: +17 to hit."},
			{Name: "Fire Breath", Description: "Exhales fire in a 90-foot cone."},
		},
		LegendaryActions: []models.Feature{
			{Name: "Wing Attack", Cost: 2, Description: "The dragon beats its wings."},
		},
		IsPublic: true,
		CardSize: "boss",
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	in := sampleMonster()
	if err := Create(db, in); err != nil {
		t.Fatal(err)
	}

	got, err := GetByID(db, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != in.Name || got.ArmorClass != in.ArmorClass || got.ChallengeRating != in.ChallengeRating {
		t.Errorf("scalar fields lost: %+v", got)
	}
	if !reflect.DeepEqual(got.Traits, in.Traits) ||
		!reflect.DeepEqual(got.Actions, in.Actions) ||
		!reflect.DeepEqual(got.LegendaryActions, in.LegendaryActions) {
		t.Errorf("feature lists did not round-trip")
	}
	if got.BonusActions != nil || got.Reactions != nil {
		t.Errorf("empty lists should decode to nil, got %v %v", got.BonusActions, got.Reactions)
	}
}

func TestGetMissing(t *testing.T) {
	db := openTestDB(t)
	if _, err := GetByID(db, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCanView(t *testing.T) {
	m := models.Monster{OwnerID: "u1", IsPublic: false}
	if CanView(m, "u2") || CanView(m, "") {
		t.Error("private monster visible to non-owner")
	}
	if !CanView(m, "u1") {
		t.Error("private monster hidden from owner")
	}
	m.IsPublic = true
	if !CanView(m, "") {
		t.Error("public monster hidden from anonymous")
	}
}

func TestUpdateOwnerGate(t *testing.T) {
	db := openTestDB(t)
	if err := Create(db, sampleMonster()); err != nil {
		t.Fatal(err)
	}

	changed := sampleMonster()
	changed.Name = "Renamed Dragon"
	if err := Update(db, "m1", "u2", changed); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign update = %v, want ErrForbidden", err)
	}

	if err := Update(db, "m1", "u1", changed); err != nil {
		t.Fatal(err)
	}
	got, err := GetByID(db, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Renamed Dragon" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	if err := Create(db, sampleMonster()); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO collections(id, owner_id, name) VALUES('c1','u1','Raids')`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO collection_monsters(collection_id, monster_id) VALUES('c1','m1')`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO monster_likes(user_id, monster_id) VALUES('u2','m1')`); err != nil {
		t.Fatal(err)
	}

	if _, err := Delete(db, "m1", "u2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign delete = %v, want ErrForbidden", err)
	}
	if _, err := Delete(db, "m1", "u1"); err != nil {
		t.Fatal(err)
	}

	for _, q := range []string{
		`SELECT COUNT(*) FROM collection_monsters WHERE monster_id = 'm1'`,
		`SELECT COUNT(*) FROM monster_likes WHERE monster_id = 'm1'`,
	} {
		var n int
		if err := db.QueryRow(q).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Errorf("%s = %d, want 0", q, n)
		}
	}
}

func TestSearchPublicFilters(t *testing.T) {
	db := openTestDB(t)
	pub := sampleMonster()
	if err := Create(db, pub); err != nil {
		t.Fatal(err)
	}
	priv := sampleMonster()
	priv.ID = "m2"
	priv.Name = "Hidden Horror"
	priv.IsPublic = false
	if err := Create(db, priv); err != nil {
		t.Fatal(err)
	}

	res, err := SearchPublic(db, "", "", "", 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].ID != "m1" {
		t.Errorf("private monster leaked into search: %v", res)
	}

	res, err = SearchPublic(db, "Dragon", "Gargantuan", "dragon", 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Errorf("filtered search = %v", res)
	}
}
