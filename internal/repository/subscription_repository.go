package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

const mysqlDuplicateEntry = 1062

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

const subscriptionColumns = `id, userId, plan, generationsUsed, generationsLimit, stripeCustomerId, stripeSubscriptionId, status, currentPeriodStart, currentPeriodEnd, createdAt, updatedAt`

func (r *SubscriptionRepository) scanOne(ctx context.Context, query string, arg any) (*models.Subscription, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	var s models.Subscription
	if err := row.Scan(&s.ID, &s.UserID, &s.Plan, &s.GenerationsUsed, &s.GenerationsLimit, &s.StripeCustomerID, &s.StripeSubscriptionID, &s.Status, &s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return &s, nil
}

func (r *SubscriptionRepository) FindByUserID(ctx context.Context, userID int64) (*models.Subscription, error) {
	return r.scanOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE userId = ? LIMIT 1`, userID)
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	return r.scanOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ? LIMIT 1`, id)
}

// CreateDefault inserts the free-plan subscription. It reports created=false when another
// writer inserted the row first (unique userId).
func (r *SubscriptionRepository) CreateDefault(ctx context.Context, userID int64) (bool, error) {
	const query = `
INSERT INTO subscriptions (userId, plan, generationsUsed, generationsLimit, status)
VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, userID, models.DefaultPlan, 0, models.DefaultGenerationsLimit, models.SubscriptionActive)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return false, nil
		}
		return false, fmt.Errorf("insert subscription: %w", err)
	}
	return true, nil
}

// Update applies the supplied fields and refreshes updatedAt.
func (r *SubscriptionRepository) Update(ctx context.Context, id int64, upd SubscriptionUpdate) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Plan != nil {
		add("plan", *upd.Plan)
	}
	if upd.GenerationsUsed != nil {
		add("generationsUsed", *upd.GenerationsUsed)
	}
	if upd.GenerationsLimit != nil {
		add("generationsLimit", *upd.GenerationsLimit)
	}
	if upd.StripeCustomerID != nil {
		add("stripeCustomerId", *upd.StripeCustomerID)
	}
	if upd.StripeSubscriptionID != nil {
		add("stripeSubscriptionId", *upd.StripeSubscriptionID)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.CurrentPeriodStart != nil {
		add("currentPeriodStart", *upd.CurrentPeriodStart)
	}
	if upd.CurrentPeriodEnd != nil {
		add("currentPeriodEnd", *upd.CurrentPeriodEnd)
	}
	sets = append(sets, "updatedAt = NOW()")
	args = append(args, id)

	query := "UPDATE subscriptions SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

// IncrementUsage bumps generationsUsed in a single statement. It reports false when no row matched.
func (r *SubscriptionRepository) IncrementUsage(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE subscriptions SET generationsUsed = generationsUsed + 1, updatedAt = NOW() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("increment subscription usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("increment subscription usage: %w", err)
	}
	return n > 0, nil
}
