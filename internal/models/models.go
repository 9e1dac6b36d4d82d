package models

import (
	"time"

	"github.com/Raju11sui/Outreacher-ai/internal/outreach"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
	PlanAgency  Plan = "agency"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
)

type OutreachGoal string

const (
	GoalBookCall    OutreachGoal = "book_call"
	GoalCloseSale   OutreachGoal = "close_sale"
	GoalPartnership OutreachGoal = "partnership"
)

type Tone string

const (
	ToneDirect    Tone = "direct"
	ToneFriendly  Tone = "friendly"
	ToneAuthority Tone = "authority"
	TonePremium   Tone = "premium"
)

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignCompleted CampaignStatus = "completed"
	CampaignArchived  CampaignStatus = "archived"
)

// Defaults applied when a subscription is created on first read.
const (
	DefaultPlan             = PlanFree
	DefaultGenerationsLimit = 3
)

type User struct {
	ID           int64     `json:"id"`
	OpenID       string    `json:"openId"`
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	LoginMethod  *string   `json:"loginMethod"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

type Subscription struct {
	ID                   int64              `json:"id"`
	UserID               int64              `json:"userId"`
	Plan                 Plan               `json:"plan"`
	GenerationsUsed      int                `json:"generationsUsed"`
	GenerationsLimit     int                `json:"generationsLimit"`
	StripeCustomerID     *string            `json:"stripeCustomerId"`
	StripeSubscriptionID *string            `json:"stripeSubscriptionId"`
	Status               SubscriptionStatus `json:"status"`
	CurrentPeriodStart   *time.Time         `json:"currentPeriodStart"`
	CurrentPeriodEnd     *time.Time         `json:"currentPeriodEnd"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// Remaining is the number of generations left in the current allowance, never negative.
func (s Subscription) Remaining() int {
	if s.GenerationsUsed >= s.GenerationsLimit {
		return 0
	}
	return s.GenerationsLimit - s.GenerationsUsed
}

type Campaign struct {
	ID                 int64          `json:"id"`
	UserID             int64          `json:"userId"`
	ProspectName       *string        `json:"prospectName"`
	ProspectProfile    *string        `json:"prospectProfile"`
	ProspectBio        *string        `json:"prospectBio"`
	ServiceDescription string         `json:"serviceDescription"`
	OutreachGoal       OutreachGoal   `json:"outreachGoal"`
	Tone               Tone           `json:"tone"`
	Status             CampaignStatus `json:"status"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

type Message struct {
	ID                  int64     `json:"id"`
	CampaignID          int64     `json:"campaignId"`
	UserID              int64     `json:"userId"`
	HookLine            string    `json:"hookLine"`
	MainMessage         string    `json:"mainMessage"`
	FollowUp1           *string   `json:"followUp1"`
	FollowUp2           *string   `json:"followUp2"`
	PsychologyBreakdown *string   `json:"psychologyBreakdown"`
	PainPointIdentified *string   `json:"painPointIdentified"`
	AuthorityAngle      *string   `json:"authorityAngle"`
	CuriosityTrigger    *string   `json:"curiosityTrigger"`
	CTAStructure        *string   `json:"ctaStructure"`
	CreatedAt           time.Time `json:"createdAt"`
}

// MessageFromResult maps a generated sequence onto a message row for the given campaign.
func MessageFromResult(userID, campaignID int64, res outreach.Result) Message {
	return Message{
		CampaignID:          campaignID,
		UserID:              userID,
		HookLine:            res.Hook,
		MainMessage:         res.Main,
		FollowUp1:           optional(res.FollowUp1),
		FollowUp2:           optional(res.FollowUp2),
		PainPointIdentified: optional(res.Psychology.PainPoint),
		AuthorityAngle:      optional(res.Psychology.Authority),
		CuriosityTrigger:    optional(res.Psychology.Curiosity),
		CTAStructure:        optional(res.Psychology.CTA),
	}
}

// ValidPlan reports whether p is a known plan.
func ValidPlan(p Plan) bool {
	switch p {
	case PlanFree, PlanStarter, PlanPro, PlanAgency:
		return true
	}
	return false
}

func ValidGoal(g OutreachGoal) bool {
	switch g {
	case GoalBookCall, GoalCloseSale, GoalPartnership:
		return true
	}
	return false
}

func ValidTone(t Tone) bool {
	switch t {
	case ToneDirect, ToneFriendly, ToneAuthority, TonePremium:
		return true
	}
	return false
}

func ValidCampaignStatus(s CampaignStatus) bool {
	switch s {
	case CampaignDraft, CampaignCompleted, CampaignArchived:
		return true
	}
	return false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
