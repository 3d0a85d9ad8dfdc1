package laircard

import (
	"database/sql"
	"errors"

	"monstermaker/pkg/models"
)

var ErrNotFound = errors.New("lair card not found")
var ErrForbidden = errors.New("access denied")

func Create(db *sql.DB, lc models.LairCard) error {
	actions, err := models.EncodeFeatures(lc.Actions)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
	INSERT INTO lair_cards(
		id, owner_id, monster_name, lair_name, description,
		initiative, actions, regional_effects, back_image
	) VALUES(?,?,?,?,?,?,?,?,?)`,
		lc.ID, lc.OwnerID, lc.MonsterName, lc.LairName, lc.Description,
		lc.Initiative, actions, lc.RegionalEffects, lc.BackImage,
	)
	return err
}

func GetByID(db *sql.DB, id string) (models.LairCard, error) {
	var lc models.LairCard
	var actions string
	err := db.QueryRow(`
	SELECT id, owner_id, monster_name, lair_name, description,
	       initiative, actions, regional_effects, back_image, created_at
	FROM lair_cards WHERE id = ?`, id).Scan(
		&lc.ID, &lc.OwnerID, &lc.MonsterName, &lc.LairName, &lc.Description,
		&lc.Initiative, &actions, &lc.RegionalEffects, &lc.BackImage, &lc.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LairCard{}, ErrNotFound
	}
	if err != nil {
		return models.LairCard{}, err
	}
	lc.Actions, err = models.DecodeFeatures(actions)
	return lc, err
}

func ListByOwner(db *sql.DB, ownerID string) ([]models.LairCard, error) {
	rows, err := db.Query(`
	SELECT id, owner_id, monster_name, lair_name, description,
	       initiative, actions, regional_effects, back_image, created_at
	FROM lair_cards WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.LairCard
	for rows.Next() {
		var lc models.LairCard
		var actions string
		if err := rows.Scan(
			&lc.ID, &lc.OwnerID, &lc.MonsterName, &lc.LairName, &lc.Description,
			&lc.Initiative, &actions, &lc.RegionalEffects, &lc.BackImage, &lc.CreatedAt,
		); err != nil {
			return nil, err
		}
		if lc.Actions, err = models.DecodeFeatures(actions); err != nil {
			return nil, err
		}
		res = append(res, lc)
	}
	return res, rows.Err()
}

func Update(db *sql.DB, id, ownerID string, lc models.LairCard) error {
	existing, err := GetByID(db, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrForbidden
	}
	actions, err := models.EncodeFeatures(lc.Actions)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
	UPDATE lair_cards SET
		monster_name=?, lair_name=?, description=?,
		initiative=?, actions=?, regional_effects=?, back_image=?
	WHERE id=? AND owner_id=?`,
		lc.MonsterName, lc.LairName, lc.Description,
		lc.Initiative, actions, lc.RegionalEffects, lc.BackImage,
		id, ownerID,
	)
	return err
}

func Delete(db *sql.DB, id, ownerID string) (models.LairCard, error) {
	lc, err := GetByID(db, id)
	if err != nil {
		return models.LairCard{}, err
	}
	if lc.OwnerID != ownerID {
		return models.LairCard{}, ErrForbidden
	}
	_, err = db.Exec(`DELETE FROM lair_cards WHERE id = ? AND owner_id = ?`, id, ownerID)
	return lc, err
}
