package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"topichat/internal/domain"
	"topichat/internal/service"
)

var validate = validator.New()

type topicCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	SessionID   string `json:"sessionId" validate:"required"`
}

func handleListTopics(topics *service.TopicService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"topics":  topics.List(),
		})
	}
}

func handleGetTopic(topics *service.TopicService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := topics.Get(chi.URLParam(r, "topicID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"topic":   t,
		})
	}
}

func handleCreateTopic(topics *service.TopicService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req topicCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "invalid JSON body"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "name and sessionId are required"})
			return
		}

		t, err := topics.Create(service.TopicCreateInput{
			Name:        req.Name,
			Description: req.Description,
			SessionID:   req.SessionID,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"topic":   t,
		})
	}
}

func handleListMessages(topics *service.TopicService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := topics.Messages(chi.URLParam(r, "topicID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if msgs == nil {
			msgs = []*domain.Message{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"messages": msgs,
		})
	}
}
