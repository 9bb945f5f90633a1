package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/models"
)

// SubscriberHandler manages the daily-report recipient list
type SubscriberHandler struct {
	storage  interfaces.SubscriberStorage
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewSubscriberHandler creates a new subscriber handler
func NewSubscriberHandler(storage interfaces.SubscriberStorage, logger arbor.ILogger) *SubscriberHandler {
	return &SubscriberHandler{
		storage:  storage,
		validate: validator.New(),
		logger:   logger,
	}
}

// SubscribeHandler registers (or re-registers) a daily-report recipient
// POST /api/subscribe
func (h *SubscriberHandler) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var body struct {
		Email        string `json:"email" validate:"required,email"`
		WantsReports *bool  `json:"wants_reports"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}
	if err := h.validate.Struct(body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	// Subscribing defaults to opting in; an explicit false opts out
	wantsReports := true
	if body.WantsReports != nil {
		wantsReports = *body.WantsReports
	}

	sub := &models.Subscriber{
		Email:        strings.ToLower(strings.TrimSpace(body.Email)),
		WantsReports: wantsReports,
	}
	if err := h.storage.SaveSubscriber(sub); err != nil {
		WriteServiceError(w, err)
		return
	}

	h.logger.Info().Str("email", sub.Email).Bool("wants_reports", wantsReports).Msg("Subscriber saved")
	WriteSuccess(w, "Subscribed")
}

// ListSubscribersHandler returns the full recipient list
// GET /api/subscribers
func (h *SubscriberHandler) ListSubscribersHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	subs, err := h.storage.ListSubscribers()
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(subs),
		"subscribers": subs,
	})
}
