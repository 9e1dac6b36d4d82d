package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

type CampaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

const campaignColumns = `id, userId, prospectName, prospectProfile, prospectBio, serviceDescription, outreachGoal, tone, status, createdAt, updatedAt`

func scanCampaign(row interface{ Scan(...any) error }) (models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.UserID, &c.ProspectName, &c.ProspectProfile, &c.ProspectBio, &c.ServiceDescription, &c.OutreachGoal, &c.Tone, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts the campaign and reads it back so generated columns are populated.
func (r *CampaignRepository) Create(ctx context.Context, in CreateCampaignInput) (*models.Campaign, error) {
	in = in.withDefaults()
	const query = `
INSERT INTO campaigns (userId, prospectName, prospectProfile, prospectBio, serviceDescription, outreachGoal, tone, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, in.UserID, in.ProspectName, in.ProspectProfile, in.ProspectBio,
		in.ServiceDescription, in.OutreachGoal, in.Tone, in.Status)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("campaign last insert id: %w", err)
	}
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("campaign %d missing after insert", id)
	}
	return c, nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = ? LIMIT 1`
	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	return &c, nil
}

func (r *CampaignRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE userId = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	out := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return out, nil
}
