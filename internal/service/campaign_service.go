package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
	"github.com/Raju11sui/Outreacher-ai/internal/outreach"
	"github.com/Raju11sui/Outreacher-ai/internal/repository"
)

// CampaignExporter uploads a campaign and its messages and returns a URL to the object.
type CampaignExporter interface {
	ExportCampaign(ctx context.Context, campaign models.Campaign, messages []models.Message) (string, error)
}

type CampaignService struct {
	store         repository.Store
	subscriptions *SubscriptionService
	exporter      CampaignExporter
	log           *slog.Logger
}

// NewCampaignService wires the service. exporter may be nil when no bucket is configured.
func NewCampaignService(store repository.Store, subscriptions *SubscriptionService, exporter CampaignExporter, log *slog.Logger) *CampaignService {
	return &CampaignService{store: store, subscriptions: subscriptions, exporter: exporter, log: log}
}

type CreateCampaignInput struct {
	ProspectName       *string               `json:"prospectName"`
	ProspectProfile    *string               `json:"prospectProfile"`
	ProspectBio        *string               `json:"prospectBio"`
	ServiceDescription string                `json:"serviceDescription"`
	OutreachGoal       models.OutreachGoal   `json:"outreachGoal"`
	Tone               models.Tone           `json:"tone"`
	Status             models.CampaignStatus `json:"status"`
}

func (in CreateCampaignInput) validate() error {
	if strings.TrimSpace(in.ServiceDescription) == "" {
		return &ValidationError{Field: "serviceDescription", Reason: "is required"}
	}
	if !models.ValidGoal(in.OutreachGoal) {
		return &ValidationError{Field: "outreachGoal", Reason: fmt.Sprintf("unknown goal %q", in.OutreachGoal)}
	}
	if in.Tone != "" && !models.ValidTone(in.Tone) {
		return &ValidationError{Field: "tone", Reason: fmt.Sprintf("unknown tone %q", in.Tone)}
	}
	if in.Status != "" && !models.ValidCampaignStatus(in.Status) {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", in.Status)}
	}
	return nil
}

func (s *CampaignService) Create(ctx context.Context, userID int64, in CreateCampaignInput) (*models.Campaign, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c, err := s.store.CreateCampaign(ctx, repository.CreateCampaignInput{
		UserID:             userID,
		ProspectName:       in.ProspectName,
		ProspectProfile:    in.ProspectProfile,
		ProspectBio:        in.ProspectBio,
		ServiceDescription: in.ServiceDescription,
		OutreachGoal:       in.OutreachGoal,
		Tone:               in.Tone,
		Status:             in.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return c, nil
}

func (s *CampaignService) List(ctx context.Context, userID int64) ([]models.Campaign, error) {
	list, err := s.store.GetCampaignsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return list, nil
}

// Get returns the campaign if it belongs to userID. Another user's campaign is reported as not found.
func (s *CampaignService) Get(ctx context.Context, userID, id int64) (*models.Campaign, error) {
	c, err := s.store.GetCampaignByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if c == nil || c.UserID != userID {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *CampaignService) Messages(ctx context.Context, userID, campaignID int64) ([]models.Message, error) {
	if _, err := s.Get(ctx, userID, campaignID); err != nil {
		return nil, err
	}
	list, err := s.store.GetMessagesByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list campaign messages: %w", err)
	}
	return list, nil
}

func (s *CampaignService) UserMessages(ctx context.Context, userID int64) ([]models.Message, error) {
	list, err := s.store.GetMessagesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return list, nil
}

type SaveMessageInput struct {
	CampaignID          int64   `json:"campaignId"`
	HookLine            string  `json:"hookLine"`
	MainMessage         string  `json:"mainMessage"`
	FollowUp1           *string `json:"followUp1"`
	FollowUp2           *string `json:"followUp2"`
	PsychologyBreakdown *string `json:"psychologyBreakdown"`
	PainPointIdentified *string `json:"painPointIdentified"`
	AuthorityAngle      *string `json:"authorityAngle"`
	CuriosityTrigger    *string `json:"curiosityTrigger"`
	CTAStructure        *string `json:"ctaStructure"`
}

// SaveMessage stores a message on one of the user's campaigns and counts it against the
// user's generation allowance. The two writes are separate; a failed count is logged and the
// stored message is still returned.
func (s *CampaignService) SaveMessage(ctx context.Context, userID int64, in SaveMessageInput) (*models.Message, error) {
	if strings.TrimSpace(in.HookLine) == "" {
		return nil, &ValidationError{Field: "hookLine", Reason: "is required"}
	}
	if strings.TrimSpace(in.MainMessage) == "" {
		return nil, &ValidationError{Field: "mainMessage", Reason: "is required"}
	}
	if _, err := s.Get(ctx, userID, in.CampaignID); err != nil {
		return nil, err
	}

	m, err := s.store.CreateMessage(ctx, repository.CreateMessageInput{
		CampaignID:          in.CampaignID,
		UserID:              userID,
		HookLine:            in.HookLine,
		MainMessage:         in.MainMessage,
		FollowUp1:           in.FollowUp1,
		FollowUp2:           in.FollowUp2,
		PsychologyBreakdown: in.PsychologyBreakdown,
		PainPointIdentified: in.PainPointIdentified,
		AuthorityAngle:      in.AuthorityAngle,
		CuriosityTrigger:    in.CuriosityTrigger,
		CTAStructure:        in.CTAStructure,
	})
	if err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	if _, err := s.subscriptions.RecordGeneration(ctx, userID); err != nil {
		s.log.Error("record generation failed", "user_id", userID, "message_id", m.ID, "err", err)
	}
	return m, nil
}

// SaveResult stores a generated sequence on a campaign.
func (s *CampaignService) SaveResult(ctx context.Context, userID, campaignID int64, res outreach.Result) (*models.Message, error) {
	m := models.MessageFromResult(userID, campaignID, res)
	return s.SaveMessage(ctx, userID, SaveMessageInput{
		CampaignID:          campaignID,
		HookLine:            m.HookLine,
		MainMessage:         m.MainMessage,
		FollowUp1:           m.FollowUp1,
		FollowUp2:           m.FollowUp2,
		PainPointIdentified: m.PainPointIdentified,
		AuthorityAngle:      m.AuthorityAngle,
		CuriosityTrigger:    m.CuriosityTrigger,
		CTAStructure:        m.CTAStructure,
	})
}

// Export uploads the campaign with its messages and returns the object URL.
func (s *CampaignService) Export(ctx context.Context, userID, campaignID int64) (string, error) {
	if s.exporter == nil {
		return "", ErrExportDisabled
	}
	c, err := s.Get(ctx, userID, campaignID)
	if err != nil {
		return "", err
	}
	messages, err := s.store.GetMessagesByCampaignID(ctx, campaignID)
	if err != nil {
		return "", fmt.Errorf("export campaign: %w", err)
	}
	url, err := s.exporter.ExportCampaign(ctx, *c, messages)
	if err != nil {
		return "", fmt.Errorf("export campaign: %w", err)
	}
	s.log.Info("campaign exported", "campaign_id", campaignID, "messages", len(messages), "url", url)
	return url, nil
}

// GenerationRequest renders a campaign as the prompt a provider receives.
func GenerationRequest(c models.Campaign) outreach.Request {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	bio := deref(c.ProspectBio)
	if bio == "" {
		bio = deref(c.ProspectProfile)
	}
	return outreach.NewRequest(outreach.BuildPrompt(outreach.Brief{
		ProspectName:       deref(c.ProspectName),
		ProspectBio:        bio,
		ServiceDescription: c.ServiceDescription,
		OutreachGoal:       string(c.OutreachGoal),
		Tone:               string(c.Tone),
	}))
}
