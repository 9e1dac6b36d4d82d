package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
	"github.com/Raju11sui/Outreacher-ai/internal/outreach"
	"github.com/Raju11sui/Outreacher-ai/internal/provider"
	"github.com/Raju11sui/Outreacher-ai/internal/repository"
	"github.com/Raju11sui/Outreacher-ai/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := repository.NewResolver("", "", nil, log)
	selector := provider.NewSelector(provider.Credentials{}, nil, log)
	subs := service.NewSubscriptionService(store)

	srv := NewServer(":0", log, Deps{
		Generator:         service.NewGenerationService(service.NewPipeline(selector, time.Second), log),
		Users:             service.NewUserService(store),
		Subscriptions:     subs,
		Campaigns:         service.NewCampaignService(store, subs, nil, log),
		Providers:         selector,
		Storage:           store,
		GenerationTimeout: time.Second,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, openID string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if openID != "" {
		req.Header.Set(headerOpenID, openID)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestChatFallsBackWithoutProvider(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"messages": []map[string]string{
		{"role": "user", "content": "Prospect Name: Sarah\nProspect Info/Bio:\nDesigner\n\nTone: friendly\n"},
	}}

	resp := do(t, ts, http.MethodPost, "/api/chat", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[outreach.Result](t, resp)
	assert.True(t, res.IsMock)
	assert.True(t, strings.HasPrefix(res.Hook, "Hey Sarah!"), res.Hook)
	assert.Equal(t, "Would love to share some ideas if you're open?", res.Psychology.CTA)
	assert.NotEmpty(t, res.FollowUp1)
	assert.NotEmpty(t, res.FollowUp2)
}

func TestChatRejectsMalformedRequests(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, http.MethodPost, "/api/chat", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, ts, http.MethodPost, "/api/chat", "", map[string]any{"messages": []any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, ts, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	h := decode[healthResponse](t, resp)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "ephemeral", h.Storage)
	assert.False(t, h.Providers.GitHubTokenConfigured)
	assert.False(t, h.Providers.GoogleKeyConfigured)
	_, err := time.Parse(time.RFC3339, h.Timestamp)
	assert.NoError(t, err)
}

func TestMeDefaultsToDevUserAndCreatesNewUsers(t *testing.T) {
	ts := newTestServer(t)

	me := decode[models.User](t, do(t, ts, http.MethodGet, "/api/me", "", nil))
	assert.Equal(t, repository.DevUserOpenID, me.OpenID)
	assert.Equal(t, models.RoleAdmin, me.Role)

	other := decode[models.User](t, do(t, ts, http.MethodGet, "/api/me", "user-77", nil))
	assert.Equal(t, "user-77", other.OpenID)
	assert.Equal(t, models.RoleUser, other.Role)
	assert.Equal(t, int64(2), other.ID)

	again := decode[models.User](t, do(t, ts, http.MethodGet, "/api/me", "user-77", nil))
	assert.Equal(t, other.ID, again.ID)
}

func TestSubscriptionIsCreatedOnRead(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, ts, http.MethodGet, "/api/subscription", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Plan             string `json:"plan"`
		GenerationsLimit int    `json:"generationsLimit"`
		Remaining        int    `json:"remaining"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "free", body.Plan)
	assert.Equal(t, 3, body.GenerationsLimit)
	assert.Equal(t, 3, body.Remaining)
}

func TestCampaignLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, http.MethodPost, "/api/campaigns", "", map[string]any{
		"prospectName":       "Sarah",
		"prospectBio":        "Runs a design studio",
		"serviceDescription": "Outreach automation",
		"outreachGoal":       "book_call",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	c := decode[models.Campaign](t, resp)
	assert.Equal(t, models.ToneFriendly, c.Tone)
	assert.Equal(t, models.CampaignDraft, c.Status)

	list := decode[[]models.Campaign](t, do(t, ts, http.MethodGet, "/api/campaigns", "", nil))
	assert.Len(t, list, 1)

	resp = do(t, ts, http.MethodGet, "/api/campaigns/1", "someone-else", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, ts, http.MethodGet, "/api/campaigns/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, ts, http.MethodPost, "/api/campaigns/1/generate", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	gen := decode[generateResponse](t, resp)
	assert.True(t, gen.Result.IsMock)
	assert.Equal(t, "Hey Sarah! Loved your recent updates 🚀", gen.Message.HookLine)

	resp = do(t, ts, http.MethodPost, "/api/messages", "", map[string]any{
		"campaignId": 1, "hookLine": "Hand written", "mainMessage": "Body",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	msgs := decode[[]models.Message](t, do(t, ts, http.MethodGet, "/api/campaigns/1/messages", "", nil))
	assert.Len(t, msgs, 2)
	all := decode[[]models.Message](t, do(t, ts, http.MethodGet, "/api/messages", "", nil))
	assert.Len(t, all, 2)

	sub := decode[models.Subscription](t, do(t, ts, http.MethodGet, "/api/subscription", "", nil))
	assert.Equal(t, 2, sub.GenerationsUsed)

	resp = do(t, ts, http.MethodPost, "/api/campaigns/1/export", "", nil)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestCreateCampaignValidation(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, ts, http.MethodPost, "/api/campaigns", "", map[string]any{"outreachGoal": "book_call"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChangePlanRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{"plan": "pro", "generationsLimit": 50}

	resp := do(t, ts, http.MethodPut, "/api/admin/users/5/plan", "regular-user", body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, ts, http.MethodPut, "/api/admin/users/5/plan", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sub := decode[models.Subscription](t, resp)
	assert.Equal(t, models.PlanPro, sub.Plan)
	assert.Equal(t, 50, sub.GenerationsLimit)
}
