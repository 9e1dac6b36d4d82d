package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, campaignId, userId, hookLine, mainMessage, followUp1, followUp2, psychologyBreakdown, painPointIdentified, authorityAngle, curiosityTrigger, ctaStructure, createdAt`

func scanMessage(row interface{ Scan(...any) error }) (models.Message, error) {
	var m models.Message
	err := row.Scan(&m.ID, &m.CampaignID, &m.UserID, &m.HookLine, &m.MainMessage, &m.FollowUp1, &m.FollowUp2,
		&m.PsychologyBreakdown, &m.PainPointIdentified, &m.AuthorityAngle, &m.CuriosityTrigger, &m.CTAStructure, &m.CreatedAt)
	return m, err
}

func (r *MessageRepository) Create(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	const query = `
INSERT INTO messages (campaignId, userId, hookLine, mainMessage, followUp1, followUp2, psychologyBreakdown, painPointIdentified, authorityAngle, curiosityTrigger, ctaStructure)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, in.CampaignID, in.UserID, in.HookLine, in.MainMessage, in.FollowUp1, in.FollowUp2,
		in.PsychologyBreakdown, in.PainPointIdentified, in.AuthorityAngle, in.CuriosityTrigger, in.CTAStructure)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("message last insert id: %w", err)
	}

	query2 := `SELECT ` + messageColumns + ` FROM messages WHERE id = ? LIMIT 1`
	m, err := scanMessage(r.db.QueryRowContext(ctx, query2, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("message %d missing after insert", id)
		}
		return nil, fmt.Errorf("scan message: %w", err)
	}
	return &m, nil
}

func (r *MessageRepository) ListByCampaignID(ctx context.Context, campaignID int64) ([]models.Message, error) {
	return r.list(ctx, `SELECT `+messageColumns+` FROM messages WHERE campaignId = ? ORDER BY id`, campaignID)
}

func (r *MessageRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Message, error) {
	return r.list(ctx, `SELECT `+messageColumns+` FROM messages WHERE userId = ? ORDER BY id`, userID)
}

func (r *MessageRepository) list(ctx context.Context, query string, arg any) ([]models.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}
