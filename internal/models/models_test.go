package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raju11sui/Outreacher-ai/internal/outreach"
)

func TestMessageFromResult(t *testing.T) {
	res := outreach.Synthesize("Prospect Name: Sarah\nTone: friendly\n")

	msg := MessageFromResult(7, 3, res)

	assert.Equal(t, int64(7), msg.UserID)
	assert.Equal(t, int64(3), msg.CampaignID)
	assert.Equal(t, res.Hook, msg.HookLine)
	assert.Equal(t, res.Main, msg.MainMessage)
	require.NotNil(t, msg.CTAStructure)
	assert.Equal(t, res.Psychology.CTA, *msg.CTAStructure)
	assert.Nil(t, msg.PsychologyBreakdown)
}

func TestSubscriptionRemaining(t *testing.T) {
	assert.Equal(t, 2, Subscription{GenerationsUsed: 1, GenerationsLimit: 3}.Remaining())
	assert.Equal(t, 0, Subscription{GenerationsUsed: 5, GenerationsLimit: 3}.Remaining())
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidPlan(PlanAgency))
	assert.False(t, ValidPlan("enterprise"))
	assert.True(t, ValidTone(TonePremium))
	assert.False(t, ValidTone("sarcastic"))
	assert.True(t, ValidGoal(GoalPartnership))
	assert.False(t, ValidCampaignStatus("deleted"))
	assert.True(t, ValidCampaignStatus(CampaignArchived))
}
