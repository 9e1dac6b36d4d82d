package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

// DevUserOpenID is the identity seeded into the in-memory store so local flows work without login.
const DevUserOpenID = "dev-user-001"

// MemoryStore keeps every record in process memory. One mutex covers each operation, so
// read-modify-write sequences such as find-or-create never interleave.
type MemoryStore struct {
	mu            sync.Mutex
	ownerOpenID   string
	now           func() time.Time
	users         []models.User
	subscriptions []models.Subscription
	campaigns     []models.Campaign
	messages      []models.Message
}

// NewMemoryStore creates the store and seeds the dev user.
func NewMemoryStore(ownerOpenID string) *MemoryStore {
	s := &MemoryStore{ownerOpenID: ownerOpenID, now: time.Now}
	now := s.now()
	s.users = append(s.users, models.User{
		ID:           1,
		OpenID:       DevUserOpenID,
		Name:         strPtr("Dev User"),
		Email:        strPtr("dev@outreach-iq.local"),
		LoginMethod:  strPtr("mock"),
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastSignedIn: now,
	})
	return s
}

// nextID returns max(existing)+1, or 1 for an empty collection.
func nextID(ids []int64) int64 {
	var highest int64
	for _, id := range ids {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

func (s *MemoryStore) UpsertUser(ctx context.Context, in UpsertUserInput) error {
	if in.OpenID == "" {
		return fmt.Errorf("upsert user: openId is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	signedIn := now
	if in.LastSignedIn != nil {
		signedIn = *in.LastSignedIn
	}
	role, roleSet := roleFor(in, s.ownerOpenID)

	for i := range s.users {
		u := &s.users[i]
		if u.OpenID != in.OpenID {
			continue
		}
		if in.Name != nil {
			u.Name = cloneStr(in.Name)
		}
		if in.Email != nil {
			u.Email = cloneStr(in.Email)
		}
		if in.LoginMethod != nil {
			u.LoginMethod = cloneStr(in.LoginMethod)
		}
		if roleSet {
			u.Role = role
		}
		u.UpdatedAt = now
		u.LastSignedIn = signedIn
		return nil
	}

	ids := make([]int64, len(s.users))
	for i, u := range s.users {
		ids[i] = u.ID
	}
	s.users = append(s.users, models.User{
		ID:           nextID(ids),
		OpenID:       in.OpenID,
		Name:         cloneStr(in.Name),
		Email:        cloneStr(in.Email),
		LoginMethod:  cloneStr(in.LoginMethod),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastSignedIn: signedIn,
	})
	return nil
}

func (s *MemoryStore) GetUserByOpenID(ctx context.Context, openID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.OpenID == openID {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetOrCreateSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subscriptions {
		if sub.UserID == userID {
			return &sub, nil
		}
	}

	ids := make([]int64, len(s.subscriptions))
	for i, sub := range s.subscriptions {
		ids[i] = sub.ID
	}
	now := s.now()
	sub := models.Subscription{
		ID:               nextID(ids),
		UserID:           userID,
		Plan:             models.DefaultPlan,
		GenerationsUsed:  0,
		GenerationsLimit: models.DefaultGenerationsLimit,
		Status:           models.SubscriptionActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.subscriptions = append(s.subscriptions, sub)
	return &sub, nil
}

func (s *MemoryStore) UpdateSubscription(ctx context.Context, id int64, upd SubscriptionUpdate) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subscriptions {
		sub := &s.subscriptions[i]
		if sub.ID != id {
			continue
		}
		if upd.Plan != nil {
			sub.Plan = *upd.Plan
		}
		if upd.GenerationsUsed != nil {
			sub.GenerationsUsed = *upd.GenerationsUsed
		}
		if upd.GenerationsLimit != nil {
			sub.GenerationsLimit = *upd.GenerationsLimit
		}
		if upd.StripeCustomerID != nil {
			sub.StripeCustomerID = cloneStr(upd.StripeCustomerID)
		}
		if upd.StripeSubscriptionID != nil {
			sub.StripeSubscriptionID = cloneStr(upd.StripeSubscriptionID)
		}
		if upd.Status != nil {
			sub.Status = *upd.Status
		}
		if upd.CurrentPeriodStart != nil {
			sub.CurrentPeriodStart = cloneTime(upd.CurrentPeriodStart)
		}
		if upd.CurrentPeriodEnd != nil {
			sub.CurrentPeriodEnd = cloneTime(upd.CurrentPeriodEnd)
		}
		sub.UpdatedAt = s.now()
		out := *sub
		return &out, nil
	}
	return nil, nil
}

// IncrementGenerationsUsed adds one to the usage counter while holding the store lock.
func (s *MemoryStore) IncrementGenerationsUsed(ctx context.Context, id int64) (*models.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subscriptions {
		sub := &s.subscriptions[i]
		if sub.ID != id {
			continue
		}
		sub.GenerationsUsed++
		sub.UpdatedAt = s.now()
		out := *sub
		return &out, nil
	}
	return nil, nil
}

func (s *MemoryStore) CreateCampaign(ctx context.Context, in CreateCampaignInput) (*models.Campaign, error) {
	in = in.withDefaults()
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, len(s.campaigns))
	for i, c := range s.campaigns {
		ids[i] = c.ID
	}
	now := s.now()
	c := models.Campaign{
		ID:                 nextID(ids),
		UserID:             in.UserID,
		ProspectName:       cloneStr(in.ProspectName),
		ProspectProfile:    cloneStr(in.ProspectProfile),
		ProspectBio:        cloneStr(in.ProspectBio),
		ServiceDescription: in.ServiceDescription,
		OutreachGoal:       in.OutreachGoal,
		Tone:               in.Tone,
		Status:             in.Status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.campaigns = append(s.campaigns, c)
	return &c, nil
}

func (s *MemoryStore) GetCampaignsByUserID(ctx context.Context, userID int64) ([]models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Campaign{}
	for _, c := range s.campaigns {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetCampaignByID(ctx context.Context, id int64) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.campaigns {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, len(s.messages))
	for i, m := range s.messages {
		ids[i] = m.ID
	}
	m := models.Message{
		ID:                  nextID(ids),
		CampaignID:          in.CampaignID,
		UserID:              in.UserID,
		HookLine:            in.HookLine,
		MainMessage:         in.MainMessage,
		FollowUp1:           cloneStr(in.FollowUp1),
		FollowUp2:           cloneStr(in.FollowUp2),
		PsychologyBreakdown: cloneStr(in.PsychologyBreakdown),
		PainPointIdentified: cloneStr(in.PainPointIdentified),
		AuthorityAngle:      cloneStr(in.AuthorityAngle),
		CuriosityTrigger:    cloneStr(in.CuriosityTrigger),
		CTAStructure:        cloneStr(in.CTAStructure),
		CreatedAt:           s.now(),
	}
	s.messages = append(s.messages, m)
	return &m, nil
}

func (s *MemoryStore) GetMessagesByCampaignID(ctx context.Context, campaignID int64) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Message{}
	for _, m := range s.messages {
		if m.CampaignID == campaignID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetMessagesByUserID(ctx context.Context, userID int64) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Message{}
	for _, m := range s.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func strPtr(s string) *string {
	return &s
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
