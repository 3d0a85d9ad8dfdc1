package user

import (
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"monstermaker/pkg/models"
)

var ErrUsernameTaken = errors.New("username already taken")
var ErrNotFound = errors.New("user not found")

// CreateTx inserts a new user inside the registration transaction. The
// caller creates the default collection in the same transaction so a user
// never exists without one.
func CreateTx(tx *sql.Tx, id, username, password, displayName, email string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		`INSERT INTO users(id, username, password_hash, display_name, email) VALUES(?,?,?,?,?)`,
		id, username, string(hash), displayName, email,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return ErrUsernameTaken
	}
	return err
}

func VerifyLogin(db *sql.DB, username, password string) (models.User, error) {
	var u models.User
	err := db.QueryRow(
		`SELECT id, username, password_hash, display_name, email, avatar_url FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.DisplayName, &u.Email, &u.AvatarURL)
	if err != nil {
		return models.User{}, errors.New("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, errors.New("invalid credentials")
	}
	return u, nil
}

func GetByID(db *sql.DB, id string) (models.User, error) {
	var u models.User
	err := db.QueryRow(
		`SELECT id, username, display_name, email, avatar_url, created_at FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.AvatarURL, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

func UpdateProfile(db *sql.DB, id, displayName, email, avatarURL string) error {
	res, err := db.Exec(
		`UPDATE users SET display_name = ?, email = ?, avatar_url = ? WHERE id = ?`,
		displayName, email, avatarURL, id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
