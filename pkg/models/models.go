package models

import "time"

// users table
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// monsters table. Feature lists are stored as JSON text columns and
// decoded at the repo boundary.
type Monster struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Name             string    `json:"name"`
	Size             string    `json:"size"`
	Type             string    `json:"type"`
	Alignment        string    `json:"alignment"`
	ArmorClass       int       `json:"armor_class"`
	ArmorNotes       string    `json:"armor_notes,omitempty"`
	HitPoints        int       `json:"hit_points"`
	HitDice          string    `json:"hit_dice,omitempty"`
	Speed            string    `json:"speed"`
	ProficiencyBonus int       `json:"proficiency_bonus"`
	Strength         int       `json:"strength"`
	Dexterity        int       `json:"dexterity"`
	Constitution     int       `json:"constitution"`
	Intelligence     int       `json:"intelligence"`
	Wisdom           int       `json:"wisdom"`
	Charisma         int       `json:"charisma"`
	SavingThrows     string    `json:"saving_throws,omitempty"`
	Skills           string    `json:"skills,omitempty"`
	Senses           string    `json:"senses,omitempty"`
	Languages        string    `json:"languages,omitempty"`
	ChallengeRating  string    `json:"challenge_rating"`
	Traits           []Feature `json:"traits"`
	Actions          []Feature `json:"actions"`
	BonusActions     []Feature `json:"bonus_actions"`
	Reactions        []Feature `json:"reactions"`
	LegendaryActions []Feature `json:"legendary_actions"`
	IsPublic         bool      `json:"is_public"`
	CardSize         string    `json:"card_size"` // "small" or "boss"; empty on legacy rows
	IsLegendary      bool      `json:"is_legendary"`
	PortraitImage    string    `json:"portrait_image,omitempty"`
	FullImage        string    `json:"full_image,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// collections table
type Collection struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsDefault   bool      `json:"is_default"`
	ShareToken  string    `json:"share_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// lair_cards table
type LairCard struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	MonsterName     string    `json:"monster_name"`
	LairName        string    `json:"lair_name"`
	Description     string    `json:"description,omitempty"`
	Initiative      int       `json:"initiative"`
	Actions         []Feature `json:"actions"`
	RegionalEffects string    `json:"regional_effects,omitempty"`
	BackImage       string    `json:"back_image,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
