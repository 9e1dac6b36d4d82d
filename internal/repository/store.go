package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

// Store is the persistence contract shared by the durable and ephemeral backends.
// Lookups that find nothing return a nil pointer and a nil error.
type Store interface {
	UpsertUser(ctx context.Context, in UpsertUserInput) error
	GetUserByOpenID(ctx context.Context, openID string) (*models.User, error)

	GetOrCreateSubscription(ctx context.Context, userID int64) (*models.Subscription, error)
	UpdateSubscription(ctx context.Context, id int64, upd SubscriptionUpdate) (*models.Subscription, error)
	IncrementGenerationsUsed(ctx context.Context, id int64) (*models.Subscription, error)

	CreateCampaign(ctx context.Context, in CreateCampaignInput) (*models.Campaign, error)
	GetCampaignsByUserID(ctx context.Context, userID int64) ([]models.Campaign, error)
	GetCampaignByID(ctx context.Context, id int64) (*models.Campaign, error)

	CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error)
	GetMessagesByCampaignID(ctx context.Context, campaignID int64) ([]models.Message, error)
	GetMessagesByUserID(ctx context.Context, userID int64) ([]models.Message, error)
}

// UpsertUserInput carries the fields of a login. Nil pointers are "not supplied" and leave
// the stored value untouched on update.
type UpsertUserInput struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *models.Role
	LastSignedIn *time.Time
}

// SubscriptionUpdate lists the subscription fields a caller may change. Nil means unchanged.
type SubscriptionUpdate struct {
	Plan                 *models.Plan
	GenerationsUsed      *int
	GenerationsLimit     *int
	StripeCustomerID     *string
	StripeSubscriptionID *string
	Status               *models.SubscriptionStatus
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
}

type CreateCampaignInput struct {
	UserID             int64
	ProspectName       *string
	ProspectProfile    *string
	ProspectBio        *string
	ServiceDescription string
	OutreachGoal       models.OutreachGoal
	Tone               models.Tone
	Status             models.CampaignStatus
}

// withDefaults fills tone and status the same way in both backends.
func (in CreateCampaignInput) withDefaults() CreateCampaignInput {
	if in.Tone == "" {
		in.Tone = models.ToneFriendly
	}
	if in.Status == "" {
		in.Status = models.CampaignDraft
	}
	return in
}

type CreateMessageInput struct {
	CampaignID          int64
	UserID              int64
	HookLine            string
	MainMessage         string
	FollowUp1           *string
	FollowUp2           *string
	PsychologyBreakdown *string
	PainPointIdentified *string
	AuthorityAngle      *string
	CuriosityTrigger    *string
	CTAStructure        *string
}

// StoreError is a durable-store failure after the backend was chosen. It is never swallowed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// roleFor returns the role to persist: an explicit role wins, then the owner rule.
func roleFor(in UpsertUserInput, ownerOpenID string) (models.Role, bool) {
	if in.Role != nil {
		return *in.Role, true
	}
	if ownerOpenID != "" && in.OpenID == ownerOpenID {
		return models.RoleAdmin, true
	}
	return models.RoleUser, false
}
