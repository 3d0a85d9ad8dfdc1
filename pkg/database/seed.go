package database

import (
	"database/sql"
	"encoding/json"
	"os"

	"monstermaker/pkg/models"
)

const seedOwnerID = "seed-gallery"

// LoadMonstersFromJSON reads a sample-monster file used to pre-populate the
// public gallery on first boot.
func LoadMonstersFromJSON(path string) ([]models.Monster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []models.Monster
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SeedMonsters inserts the sample monsters under a built-in gallery user.
// Rows that already exist are left untouched, so seeding is safe to rerun.
func SeedMonsters(db *sql.DB, list []models.Monster) (int, error) {
	if _, err := db.Exec(
		`INSERT OR IGNORE INTO users(id, username, password_hash, display_name) VALUES(?,?,?,?)`,
		seedOwnerID, "gallery", "!", "MonsterMaker Gallery",
	); err != nil {
		return 0, err
	}

	n := 0
	for _, m := range list {
		traits, err := models.EncodeFeatures(m.Traits)
		if err != nil {
			return n, err
		}
		actions, err := models.EncodeFeatures(m.Actions)
		if err != nil {
			return n, err
		}
		legendary, err := models.EncodeFeatures(m.LegendaryActions)
		if err != nil {
			return n, err
		}
		res, err := db.Exec(`
		INSERT OR IGNORE INTO monsters(
			id, owner_id, name, size, type, alignment,
			armor_class, hit_points, hit_dice, speed, proficiency_bonus,
			strength, dexterity, constitution, intelligence, wisdom, charisma,
			saving_throws, skills, senses, languages, challenge_rating,
			traits, actions, legendary_actions, is_public, card_size, is_legendary
		) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,1,?,?)`,
			m.ID, seedOwnerID, m.Name, m.Size, m.Type, m.Alignment,
			m.ArmorClass, m.HitPoints, m.HitDice, m.Speed, m.ProficiencyBonus,
			m.Strength, m.Dexterity, m.Constitution, m.Intelligence, m.Wisdom, m.Charisma,
			m.SavingThrows, m.Skills, m.Senses, m.Languages, m.ChallengeRating,
			traits, actions, legendary, m.CardSize, m.IsLegendary,
		)
		if err != nil {
			return n, err
		}
		if rows, _ := res.RowsAffected(); rows > 0 {
			n++
		}
	}
	return n, nil
}
