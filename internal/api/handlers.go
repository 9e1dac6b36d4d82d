package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Raju11sui/Outreacher-ai/internal/models"
	"github.com/Raju11sui/Outreacher-ai/internal/outreach"
	"github.com/Raju11sui/Outreacher-ai/internal/provider"
	"github.com/Raju11sui/Outreacher-ai/internal/service"
)

// handleChat always answers 200 with a sequence once the request is well formed; provider
// problems are absorbed by the fallback generator.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req outreach.Request
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Messages) == 0 {
		s.writeError(w, http.StatusBadRequest, "messages required")
		return
	}
	s.writeJSON(w, http.StatusOK, s.generator.Generate(r.Context(), req))
}

type healthResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Storage   string          `json:"storage"`
	Providers provider.Status `json:"providers"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Storage:   string(s.storage.Kind(r.Context())),
		Providers: s.providers.Configured(),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, currentUser(r))
}

type subscriptionResponse struct {
	*models.Subscription
	Remaining int `json:"remaining"`
}

func (s *Server) handleSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subscriptions.Get(r.Context(), currentUser(r).ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, subscriptionResponse{Subscription: sub, Remaining: sub.Remaining()})
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := s.campaigns.List(r.Context(), currentUser(r).ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCampaignInput
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	c, err := s.campaigns.Create(r.Context(), currentUser(r).ID, req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := s.campaignID(w, r)
	if !ok {
		return
	}
	c, err := s.campaigns.Get(r.Context(), currentUser(r).ID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCampaignMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := s.campaignID(w, r)
	if !ok {
		return
	}
	list, err := s.campaigns.Messages(r.Context(), currentUser(r).ID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

type generateResponse struct {
	Result  *outreach.Result `json:"result"`
	Message *models.Message  `json:"message"`
}

// handleGenerateForCampaign builds the prompt from the stored campaign, generates a
// sequence and saves it as a message.
func (s *Server) handleGenerateForCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := s.campaignID(w, r)
	if !ok {
		return
	}
	user := currentUser(r)
	c, err := s.campaigns.Get(r.Context(), user.ID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	res := s.generator.Generate(r.Context(), service.GenerationRequest(*c))
	msg, err := s.campaigns.SaveResult(r.Context(), user.ID, c.ID, *res)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, generateResponse{Result: res, Message: msg})
}

func (s *Server) handleExportCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := s.campaignID(w, r)
	if !ok {
		return
	}
	url, err := s.campaigns.Export(r.Context(), currentUser(r).ID, id)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	list, err := s.campaigns.UserMessages(r.Context(), currentUser(r).ID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSaveMessage(w http.ResponseWriter, r *http.Request) {
	var req service.SaveMessageInput
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	msg, err := s.campaigns.SaveMessage(r.Context(), currentUser(r).ID, req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, msg)
}

type planRequest struct {
	Plan             models.Plan `json:"plan"`
	GenerationsLimit int         `json:"generationsLimit"`
}

func (s *Server) handleChangePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userId"))
	if err != nil {
		s.badRequest(w, fmt.Errorf("invalid user id"))
		return
	}
	var req planRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	sub, err := s.subscriptions.ChangePlan(r.Context(), userID, req.Plan, req.GenerationsLimit)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sub)
}

func (s *Server) campaignID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.badRequest(w, fmt.Errorf("invalid campaign id"))
		return 0, false
	}
	return id, true
}
