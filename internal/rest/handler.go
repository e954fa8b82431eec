package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/chat-feed/internal/config"
	"github.com/s21platform/chat-feed/internal/model"
)

type Handler struct {
	session   FeedSession
	rows      RowBuilder
	validator Validator
}

func New(
	session FeedSession,
	rows RowBuilder,
	validator Validator,
) *Handler {
	return &Handler{
		session:   session,
		rows:      rows,
		validator: validator,
	}
}

// Register mounts the feed routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/feed", func(r chi.Router) {
		r.Post("/conversations/{conversation_id}/open", h.OpenConversation)
		r.Get("/rows", h.GetRows)
		r.Post("/messages/more", h.LoadMore)
		r.Post("/messages", h.SendMessage)
		r.Get("/draft", h.GetDraft)
		r.Put("/draft", h.SaveDraft)
	})
}

type FeedResponse struct {
	ConversationID string             `json:"conversation_id"`
	Rows           []model.Row        `json:"rows"`
	Cursor         model.Cursor       `json:"cursor"`
	Loading        bool               `json:"loading"`
	PendingState   string             `json:"pending_state"`
	Connectivity   model.Connectivity `json:"connectivity"`
	Draft          *string            `json:"draft,omitempty"`
	Added          *int               `json:"added,omitempty"`
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

type SendMessageResponse struct {
	Message *model.Message `json:"message"`
}

type DraftRequest struct {
	Text string `json:"text"`
}

type Error struct {
	Error       string `json:"error"`
	RestoreText string `json:"restore_text,omitempty"`
}

func (h *Handler) OpenConversation(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("OpenConversation")

	conversationID := chi.URLParam(r, "conversation_id")
	if err := h.validator.ValidateConversationID(conversationID); err != nil {
		logger.Error(fmt.Sprintf("invalid conversation id: %v", err))
		h.writeError(w, fmt.Sprintf("invalid conversation id: %v", err), http.StatusBadRequest)
		return
	}

	snapshot, draft, err := h.session.Open(r.Context(), conversationID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to open conversation %s: %v", conversationID, err))
		h.writeFeedError(w, err)
		return
	}

	response := h.feedResponse(snapshot)
	response.Draft = &draft

	h.writeJSON(w, response, http.StatusOK)
}

func (h *Handler) GetRows(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetRows")

	snapshot, err := h.session.Snapshot()
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to get feed: %v", err))
		h.writeFeedError(w, err)
		return
	}

	h.writeJSON(w, h.feedResponse(snapshot), http.StatusOK)
}

func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("LoadMore")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			logger.Error(fmt.Sprintf("invalid limit %q: %v", raw, err))
			h.writeError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		if err := h.validator.ValidatePageSize(parsed); err != nil {
			logger.Error(fmt.Sprintf("invalid limit: %v", err))
			h.writeError(w, fmt.Sprintf("invalid limit: %v", err), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	added, err := h.session.LoadMore(r.Context(), limit)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to load older messages: %v", err))
		h.writeFeedError(w, err)
		return
	}

	snapshot, err := h.session.Snapshot()
	if err != nil {
		h.writeFeedError(w, err)
		return
	}

	response := h.feedResponse(snapshot)
	response.Added = &added

	h.writeJSON(w, response, http.StatusOK)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("SendMessage")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.session.Send(r.Context(), req.Text)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to send message: %v", err))
		h.writeFeedError(w, err)
		return
	}

	logger.Info(fmt.Sprintf("message %s sent to conversation %s", msg.ID, msg.ConversationID))

	h.writeJSON(w, SendMessageResponse{Message: msg}, http.StatusOK)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetDraft")

	draft, err := h.session.Draft(r.Context())
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to get draft: %v", err))
		h.writeFeedError(w, err)
		return
	}

	h.writeJSON(w, draft, http.StatusOK)
}

func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("SaveDraft")

	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	draft, err := h.session.SaveDraft(r.Context(), req.Text)
	if err != nil {
		logger.Warn(fmt.Sprintf("failed to save draft: %v", err))
		h.writeFeedError(w, err)
		return
	}

	h.writeJSON(w, draft, http.StatusOK)
}

// ----------------------------- helpers -----------------------------

func (h *Handler) feedResponse(snapshot model.Snapshot) FeedResponse {
	return FeedResponse{
		ConversationID: snapshot.ConversationID,
		Rows:           h.rows.Rows(snapshot.Messages),
		Cursor:         snapshot.Cursor,
		Loading:        snapshot.Loading,
		PendingState:   snapshot.PendingState.String(),
		Connectivity:   snapshot.Connectivity,
	}
}

func (h *Handler) writeFeedError(w http.ResponseWriter, err error) {
	var transportErr *model.TransportError

	switch {
	case model.IsValidation(err):
		h.writeError(w, err.Error(), http.StatusBadRequest)
	case model.IsConcurrency(err), errors.Is(err, model.ErrFeedClosed):
		h.writeError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, model.ErrNoConversation):
		h.writeError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &transportErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(Error{Error: err.Error(), RestoreText: transportErr.RestoreText})
	default:
		h.writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(Error{Error: message})
}
