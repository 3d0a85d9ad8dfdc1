package collection

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"monstermaker/pkg/models"
)

var ErrNotFound = errors.New("collection not found")
var ErrForbidden = errors.New("access denied")
var ErrNameTaken = errors.New("collection name already in use")
var ErrDefaultCollection = errors.New("default collection cannot be deleted")
var ErrAlreadyExists = errors.New("monster already in collection")
var ErrMonsterNotVisible = errors.New("monster is private")
var ErrMonsterNotFound = errors.New("monster not found")

// DefaultName is the name of the collection every user gets at registration.
const DefaultName = "My Monsters"

// CreateDefaultTx inserts the registration-time default collection inside
// the same transaction that creates the user.
func CreateDefaultTx(tx *sql.Tx, id, ownerID string) error {
	_, err := tx.Exec(
		`INSERT INTO collections(id, owner_id, name, is_default) VALUES(?,?,?,1)`,
		id, ownerID, DefaultName,
	)
	return err
}

func Create(db *sql.DB, id, ownerID, name, description string) error {
	_, err := db.Exec(
		`INSERT INTO collections(id, owner_id, name, description) VALUES(?,?,?,?)`,
		id, ownerID, name, description,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return ErrNameTaken
	}
	return err
}

func scanCollection(row *sql.Row) (models.Collection, error) {
	var col models.Collection
	var token sql.NullString
	err := row.Scan(&col.ID, &col.OwnerID, &col.Name, &col.Description, &col.IsDefault, &token, &col.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Collection{}, ErrNotFound
	}
	if err != nil {
		return models.Collection{}, err
	}
	col.ShareToken = token.String
	return col, nil
}

func GetByID(db *sql.DB, id string) (models.Collection, error) {
	return scanCollection(db.QueryRow(
		`SELECT id, owner_id, name, description, is_default, share_token, created_at
		 FROM collections WHERE id = ?`, id))
}

func GetByShareToken(db *sql.DB, token string) (models.Collection, error) {
	return scanCollection(db.QueryRow(
		`SELECT id, owner_id, name, description, is_default, share_token, created_at
		 FROM collections WHERE share_token = ?`, token))
}

func ListByOwner(db *sql.DB, ownerID string) ([]models.Collection, error) {
	rows, err := db.Query(
		`SELECT id, owner_id, name, description, is_default, share_token, created_at
		 FROM collections WHERE owner_id = ? ORDER BY is_default DESC, name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Collection
	for rows.Next() {
		var col models.Collection
		var token sql.NullString
		if err := rows.Scan(&col.ID, &col.OwnerID, &col.Name, &col.Description, &col.IsDefault, &token, &col.CreatedAt); err != nil {
			return nil, err
		}
		col.ShareToken = token.String
		res = append(res, col)
	}
	return res, rows.Err()
}

// ownedByID loads a collection and checks ownership in one step; every
// mutation goes through it.
func ownedByID(db *sql.DB, id, ownerID string) (models.Collection, error) {
	col, err := GetByID(db, id)
	if err != nil {
		return models.Collection{}, err
	}
	if col.OwnerID != ownerID {
		return models.Collection{}, ErrForbidden
	}
	return col, nil
}

// Rename updates name and description. Renaming the default collection is
// allowed; only deletion is restricted.
func Rename(db *sql.DB, id, ownerID, name, description string) error {
	if _, err := ownedByID(db, id, ownerID); err != nil {
		return err
	}
	_, err := db.Exec(
		`UPDATE collections SET name = ?, description = ? WHERE id = ? AND owner_id = ?`,
		name, description, id, ownerID,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return ErrNameTaken
	}
	return err
}

func Delete(db *sql.DB, id, ownerID string) error {
	col, err := ownedByID(db, id, ownerID)
	if err != nil {
		return err
	}
	if col.IsDefault {
		return ErrDefaultCollection
	}
	_, err = db.Exec(`DELETE FROM collections WHERE id = ? AND owner_id = ?`, id, ownerID)
	return err
}

// AddMonster links a monster into a collection. The caller must own the
// collection, and the monster must be public or owned by the caller. Adding
// twice reports ErrAlreadyExists so the UI can tell "added" from "already
// present".
func AddMonster(db *sql.DB, collectionID, monsterID, actorID string) error {
	if _, err := ownedByID(db, collectionID, actorID); err != nil {
		return err
	}

	var isPublic bool
	var ownerID string
	err := db.QueryRow(`SELECT is_public, owner_id FROM monsters WHERE id = ?`, monsterID).
		Scan(&isPublic, &ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMonsterNotFound
	}
	if err != nil {
		return err
	}
	if !isPublic && ownerID != actorID {
		return ErrMonsterNotVisible
	}

	_, err = db.Exec(
		`INSERT INTO collection_monsters(collection_id, monster_id) VALUES(?,?)`,
		collectionID, monsterID,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return ErrAlreadyExists
	}
	return err
}

func RemoveMonster(db *sql.DB, collectionID, monsterID, actorID string) error {
	if _, err := ownedByID(db, collectionID, actorID); err != nil {
		return err
	}
	res, err := db.Exec(
		`DELETE FROM collection_monsters WHERE collection_id = ? AND monster_id = ?`,
		collectionID, monsterID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMonsterNotFound
	}
	return nil
}

// MemberIDs lists the monster ids in a collection, newest first.
func MemberIDs(db *sql.DB, collectionID string) ([]string, error) {
	rows, err := db.Query(
		`SELECT monster_id FROM collection_monsters WHERE collection_id = ? ORDER BY added_at DESC`,
		collectionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GenerateShareToken mints (or replaces) the collection's share token.
func GenerateShareToken(db *sql.DB, id, ownerID string) (string, error) {
	if _, err := ownedByID(db, id, ownerID); err != nil {
		return "", err
	}
	token := uuid.NewString()
	_, err := db.Exec(`UPDATE collections SET share_token = ? WHERE id = ?`, token, id)
	return token, err
}

func RevokeShareToken(db *sql.DB, id, ownerID string) error {
	if _, err := ownedByID(db, id, ownerID); err != nil {
		return err
	}
	_, err := db.Exec(`UPDATE collections SET share_token = NULL WHERE id = ?`, id)
	return err
}
