package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

const subscriptionFlightTimeout = 10 * time.Second

// MySQLStore is the durable Store. Every failure comes back as a *StoreError.
type MySQLStore struct {
	users         *UserRepository
	subscriptions *SubscriptionRepository
	campaigns     *CampaignRepository
	messages      *MessageRepository
	ownerOpenID   string

	subGroup singleflight.Group
}

func NewMySQLStore(db *sql.DB, ownerOpenID string) *MySQLStore {
	return &MySQLStore{
		users:         NewUserRepository(db),
		subscriptions: NewSubscriptionRepository(db),
		campaigns:     NewCampaignRepository(db),
		messages:      NewMessageRepository(db),
		ownerOpenID:   ownerOpenID,
	}
}

func (s *MySQLStore) UpsertUser(ctx context.Context, in UpsertUserInput) error {
	if in.OpenID == "" {
		return storeErr("upsert user", fmt.Errorf("openId is required"))
	}
	if err := s.users.Upsert(ctx, in, s.ownerOpenID); err != nil {
		return storeErr("upsert user", err)
	}
	return nil
}

func (s *MySQLStore) GetUserByOpenID(ctx context.Context, openID string) (*models.User, error) {
	u, err := s.users.FindByOpenID(ctx, openID)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	return u, nil
}

// GetOrCreateSubscription collapses concurrent calls for the same user into one round trip.
// Across processes the unique userId index decides the winner and the loser re-reads.
// The shared lookup runs detached from any single caller; each caller still stops waiting
// when its own context ends.
func (s *MySQLStore) GetOrCreateSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	ch := s.subGroup.DoChan(strconv.FormatInt(userID, 10), func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), subscriptionFlightTimeout)
		defer cancel()
		return s.findOrCreateSubscription(flightCtx, userID)
	})

	select {
	case <-ctx.Done():
		return nil, storeErr("get or create subscription", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, storeErr("get or create subscription", res.Err)
		}
		out := *res.Val.(*models.Subscription)
		return &out, nil
	}
}

func (s *MySQLStore) findOrCreateSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	sub, err := s.subscriptions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		return sub, nil
	}
	if _, err := s.subscriptions.CreateDefault(ctx, userID); err != nil {
		return nil, err
	}
	sub, err = s.subscriptions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("subscription for user %d missing after insert", userID)
	}
	return sub, nil
}

func (s *MySQLStore) UpdateSubscription(ctx context.Context, id int64, upd SubscriptionUpdate) (*models.Subscription, error) {
	if err := s.subscriptions.Update(ctx, id, upd); err != nil {
		return nil, storeErr("update subscription", err)
	}
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("update subscription", err)
	}
	return sub, nil
}

func (s *MySQLStore) IncrementGenerationsUsed(ctx context.Context, id int64) (*models.Subscription, error) {
	ok, err := s.subscriptions.IncrementUsage(ctx, id)
	if err != nil {
		return nil, storeErr("increment generations used", err)
	}
	if !ok {
		return nil, nil
	}
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("increment generations used", err)
	}
	return sub, nil
}

func (s *MySQLStore) CreateCampaign(ctx context.Context, in CreateCampaignInput) (*models.Campaign, error) {
	c, err := s.campaigns.Create(ctx, in)
	if err != nil {
		return nil, storeErr("create campaign", err)
	}
	return c, nil
}

func (s *MySQLStore) GetCampaignsByUserID(ctx context.Context, userID int64) ([]models.Campaign, error) {
	list, err := s.campaigns.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr("list campaigns", err)
	}
	return list, nil
}

func (s *MySQLStore) GetCampaignByID(ctx context.Context, id int64) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get campaign", err)
	}
	return c, nil
}

func (s *MySQLStore) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	m, err := s.messages.Create(ctx, in)
	if err != nil {
		return nil, storeErr("create message", err)
	}
	return m, nil
}

func (s *MySQLStore) GetMessagesByCampaignID(ctx context.Context, campaignID int64) ([]models.Message, error) {
	list, err := s.messages.ListByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, storeErr("list campaign messages", err)
	}
	return list, nil
}

func (s *MySQLStore) GetMessagesByUserID(ctx context.Context, userID int64) ([]models.Message, error) {
	list, err := s.messages.ListByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr("list user messages", err)
	}
	return list, nil
}
