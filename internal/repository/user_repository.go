package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, openId, name, email, loginMethod, role, createdAt, updatedAt, lastSignedIn`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.OpenID, &u.Name, &u.Email, &u.LoginMethod, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.LastSignedIn); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByOpenID(ctx context.Context, openID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE openId = ? LIMIT 1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, openID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// Upsert inserts the user or, when the openId exists, updates only the supplied columns.
// updatedAt and lastSignedIn are refreshed on every call.
func (r *UserRepository) Upsert(ctx context.Context, in UpsertUserInput, ownerOpenID string) error {
	signedIn := time.Now().UTC()
	if in.LastSignedIn != nil {
		signedIn = *in.LastSignedIn
	}
	role, roleSet := roleFor(in, ownerOpenID)

	cols := []string{"openId"}
	args := []any{in.OpenID}
	var updates []string

	optional := []struct {
		col   string
		value *string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"loginMethod", in.LoginMethod},
	}
	for _, f := range optional {
		if f.value == nil {
			continue
		}
		cols = append(cols, f.col)
		args = append(args, *f.value)
		updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", f.col, f.col))
	}

	cols = append(cols, "role")
	args = append(args, role)
	if roleSet {
		updates = append(updates, "role = VALUES(role)")
	}

	cols = append(cols, "lastSignedIn")
	args = append(args, signedIn)
	updates = append(updates, "lastSignedIn = VALUES(lastSignedIn)", "updatedAt = NOW()")

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf("INSERT INTO users (%s) VALUES (%s) ON DUPLICATE KEY UPDATE %s",
		strings.Join(cols, ", "), placeholders, strings.Join(updates, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
