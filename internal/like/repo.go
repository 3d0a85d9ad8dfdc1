package like

import (
	"database/sql"
	"errors"
)

var ErrMonsterNotFound = errors.New("monster not found")

// Toggle flips the like state for a (user, monster) pair: inserts if
// absent, deletes if present. It returns which transition happened
// ("added" or "removed") and the updated like count, so the caller never
// needs to know the prior state.
func Toggle(db *sql.DB, userID, monsterID string) (status string, count int, err error) {
	var exists bool
	err = db.QueryRow(`SELECT EXISTS(SELECT 1 FROM monsters WHERE id = ?)`, monsterID).Scan(&exists)
	if err != nil {
		return "", 0, err
	}
	if !exists {
		return "", 0, ErrMonsterNotFound
	}

	var liked bool
	err = db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM monster_likes WHERE user_id = ? AND monster_id = ?)`,
		userID, monsterID,
	).Scan(&liked)
	if err != nil {
		return "", 0, err
	}

	if liked {
		_, err = db.Exec(`DELETE FROM monster_likes WHERE user_id = ? AND monster_id = ?`, userID, monsterID)
		status = "removed"
	} else {
		_, err = db.Exec(`INSERT INTO monster_likes(user_id, monster_id) VALUES(?,?)`, userID, monsterID)
		status = "added"
	}
	if err != nil {
		return "", 0, err
	}

	count, err = Count(db, monsterID)
	return status, count, err
}

func Count(db *sql.DB, monsterID string) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM monster_likes WHERE monster_id = ?`, monsterID).Scan(&n)
	return n, err
}
