package monster

import (
	"database/sql"
	"errors"
	"fmt"

	"monstermaker/pkg/models"
)

var ErrNotFound = errors.New("monster not found")
var ErrForbidden = errors.New("access denied")

const columns = `id, owner_id, name, size, type, alignment,
	armor_class, armor_notes, hit_points, hit_dice, speed, proficiency_bonus,
	strength, dexterity, constitution, intelligence, wisdom, charisma,
	saving_throws, skills, senses, languages, challenge_rating,
	traits, actions, bonus_actions, reactions, legendary_actions,
	is_public, card_size, is_legendary, portrait_image, full_image,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMonster(row rowScanner) (models.Monster, error) {
	var m models.Monster
	var traits, actions, bonusActions, reactions, legendary string
	err := row.Scan(
		&m.ID, &m.OwnerID, &m.Name, &m.Size, &m.Type, &m.Alignment,
		&m.ArmorClass, &m.ArmorNotes, &m.HitPoints, &m.HitDice, &m.Speed, &m.ProficiencyBonus,
		&m.Strength, &m.Dexterity, &m.Constitution, &m.Intelligence, &m.Wisdom, &m.Charisma,
		&m.SavingThrows, &m.Skills, &m.Senses, &m.Languages, &m.ChallengeRating,
		&traits, &actions, &bonusActions, &reactions, &legendary,
		&m.IsPublic, &m.CardSize, &m.IsLegendary, &m.PortraitImage, &m.FullImage,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return models.Monster{}, err
	}
	for _, f := range []struct {
		raw  string
		dest *[]models.Feature
	}{
		{traits, &m.Traits},
		{actions, &m.Actions},
		{bonusActions, &m.BonusActions},
		{reactions, &m.Reactions},
		{legendary, &m.LegendaryActions},
	} {
		list, err := models.DecodeFeatures(f.raw)
		if err != nil {
			return models.Monster{}, fmt.Errorf("decode features for monster %s: %w", m.ID, err)
		}
		*f.dest = list
	}
	return m, nil
}

func encodeLists(m models.Monster) (traits, actions, bonusActions, reactions, legendary string, err error) {
	if traits, err = models.EncodeFeatures(m.Traits); err != nil {
		return
	}
	if actions, err = models.EncodeFeatures(m.Actions); err != nil {
		return
	}
	if bonusActions, err = models.EncodeFeatures(m.BonusActions); err != nil {
		return
	}
	if reactions, err = models.EncodeFeatures(m.Reactions); err != nil {
		return
	}
	legendary, err = models.EncodeFeatures(m.LegendaryActions)
	return
}

func Create(db *sql.DB, m models.Monster) error {
	traits, actions, bonusActions, reactions, legendary, err := encodeLists(m)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
	INSERT INTO monsters(
		id, owner_id, name, size, type, alignment,
		armor_class, armor_notes, hit_points, hit_dice, speed, proficiency_bonus,
		strength, dexterity, constitution, intelligence, wisdom, charisma,
		saving_throws, skills, senses, languages, challenge_rating,
		traits, actions, bonus_actions, reactions, legendary_actions,
		is_public, card_size, is_legendary, portrait_image, full_image
	) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.ID, m.OwnerID, m.Name, m.Size, m.Type, m.Alignment,
		m.ArmorClass, m.ArmorNotes, m.HitPoints, m.HitDice, m.Speed, m.ProficiencyBonus,
		m.Strength, m.Dexterity, m.Constitution, m.Intelligence, m.Wisdom, m.Charisma,
		m.SavingThrows, m.Skills, m.Senses, m.Languages, m.ChallengeRating,
		traits, actions, bonusActions, reactions, legendary,
		m.IsPublic, m.CardSize, m.IsLegendary, m.PortraitImage, m.FullImage,
	)
	return err
}

func GetByID(db *sql.DB, id string) (models.Monster, error) {
	row := db.QueryRow(`SELECT `+columns+` FROM monsters WHERE id = ?`, id)
	m, err := scanMonster(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Monster{}, ErrNotFound
	}
	return m, err
}

// CanView is the shared authorization predicate: public monsters are visible
// to everyone, private monsters only to their owner.
func CanView(m models.Monster, viewerID string) bool {
	return m.IsPublic || (viewerID != "" && m.OwnerID == viewerID)
}

// SearchPublic lists public monsters with optional name/size/type filters.
func SearchPublic(db *sql.DB, q, size, typ string, limit, offset int) ([]models.Monster, error) {
	sqlQ := `SELECT ` + columns + ` FROM monsters WHERE is_public = 1`
	args := []any{}

	if q != "" {
		sqlQ += " AND name LIKE ?"
		args = append(args, "%"+q+"%")
	}
	if size != "" {
		sqlQ += " AND size = ?"
		args = append(args, size)
	}
	if typ != "" {
		sqlQ += " AND type = ?"
		args = append(args, typ)
	}
	sqlQ += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := db.Query(sqlQ, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Monster
	for rows.Next() {
		m, err := scanMonster(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func ListByOwner(db *sql.DB, ownerID string) ([]models.Monster, error) {
	rows, err := db.Query(`SELECT `+columns+` FROM monsters WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Monster
	for rows.Next() {
		m, err := scanMonster(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

// Update replaces a monster's fields. Only the owner may mutate.
func Update(db *sql.DB, id, ownerID string, m models.Monster) error {
	existing, err := GetByID(db, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrForbidden
	}
	traits, actions, bonusActions, reactions, legendary, err := encodeLists(m)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
	UPDATE monsters SET
		name=?, size=?, type=?, alignment=?,
		armor_class=?, armor_notes=?, hit_points=?, hit_dice=?, speed=?, proficiency_bonus=?,
		strength=?, dexterity=?, constitution=?, intelligence=?, wisdom=?, charisma=?,
		saving_throws=?, skills=?, senses=?, languages=?, challenge_rating=?,
		traits=?, actions=?, bonus_actions=?, reactions=?, legendary_actions=?,
		is_public=?, card_size=?, is_legendary=?, portrait_image=?, full_image=?,
		updated_at=CURRENT_TIMESTAMP
	WHERE id=? AND owner_id=?`,
		m.Name, m.Size, m.Type, m.Alignment,
		m.ArmorClass, m.ArmorNotes, m.HitPoints, m.HitDice, m.Speed, m.ProficiencyBonus,
		m.Strength, m.Dexterity, m.Constitution, m.Intelligence, m.Wisdom, m.Charisma,
		m.SavingThrows, m.Skills, m.Senses, m.Languages, m.ChallengeRating,
		traits, actions, bonusActions, reactions, legendary,
		m.IsPublic, m.CardSize, m.IsLegendary, m.PortraitImage, m.FullImage,
		id, ownerID,
	)
	return err
}

// Delete removes a monster and returns the deleted record so the caller can
// clean up its image files. Collection memberships and likes go with it via
// foreign keys.
func Delete(db *sql.DB, id, ownerID string) (models.Monster, error) {
	m, err := GetByID(db, id)
	if err != nil {
		return models.Monster{}, err
	}
	if m.OwnerID != ownerID {
		return models.Monster{}, ErrForbidden
	}
	_, err = db.Exec(`DELETE FROM monsters WHERE id = ? AND owner_id = ?`, id, ownerID)
	return m, err
}
