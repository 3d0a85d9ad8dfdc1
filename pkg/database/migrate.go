package database

import (
	"database/sql"
	"fmt"
)

func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			display_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS monsters (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			size TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			alignment TEXT NOT NULL DEFAULT '',
			armor_class INTEGER NOT NULL DEFAULT 10,
			armor_notes TEXT NOT NULL DEFAULT '',
			hit_points INTEGER NOT NULL DEFAULT 1,
			hit_dice TEXT NOT NULL DEFAULT '',
			speed TEXT NOT NULL DEFAULT '',
			proficiency_bonus INTEGER NOT NULL DEFAULT 2,
			strength INTEGER NOT NULL DEFAULT 10,
			dexterity INTEGER NOT NULL DEFAULT 10,
			constitution INTEGER NOT NULL DEFAULT 10,
			intelligence INTEGER NOT NULL DEFAULT 10,
			wisdom INTEGER NOT NULL DEFAULT 10,
			charisma INTEGER NOT NULL DEFAULT 10,
			saving_throws TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '',
			senses TEXT NOT NULL DEFAULT '',
			languages TEXT NOT NULL DEFAULT '',
			challenge_rating TEXT NOT NULL DEFAULT '',
			traits TEXT NOT NULL DEFAULT '', -- JSON array as text
			actions TEXT NOT NULL DEFAULT '',
			bonus_actions TEXT NOT NULL DEFAULT '',
			reactions TEXT NOT NULL DEFAULT '',
			legendary_actions TEXT NOT NULL DEFAULT '',
			is_public INTEGER NOT NULL DEFAULT 0,
			card_size TEXT NOT NULL DEFAULT '',
			is_legendary INTEGER NOT NULL DEFAULT 0,
			portrait_image TEXT NOT NULL DEFAULT '',
			full_image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS collections (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_default INTEGER NOT NULL DEFAULT 0,
			share_token TEXT UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (owner_id, name)
		);`,
		`CREATE TABLE IF NOT EXISTS collection_monsters (
			collection_id TEXT NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
			monster_id TEXT NOT NULL REFERENCES monsters(id) ON DELETE CASCADE,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (collection_id, monster_id)
		);`,
		`CREATE TABLE IF NOT EXISTS monster_likes (
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			monster_id TEXT NOT NULL REFERENCES monsters(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, monster_id)
		);`,
		`CREATE TABLE IF NOT EXISTS lair_cards (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			monster_name TEXT NOT NULL,
			lair_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			initiative INTEGER NOT NULL DEFAULT 20,
			actions TEXT NOT NULL DEFAULT '', -- JSON array as text
			regional_effects TEXT NOT NULL DEFAULT '',
			back_image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for i, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate stmt %d: %w", i, err)
		}
	}
	return nil
}
