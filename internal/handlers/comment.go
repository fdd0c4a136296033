package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ratingly/apiserver/internal/services"
	"github.com/ratingly/apiserver/internal/store"
)

// CommentHandler provides HTTP handlers for comments on reviews.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler constructs a handler with the provided service.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRouter registers comment routes on the given router. All of
// them require authentication.
func CommentRouter(
	r chi.Router,
	commentService *services.CommentService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewCommentHandler(commentService)

	r.With(authMiddleware).Get("/me", handler.MyComments)
	r.With(authMiddleware).Delete("/{commentID}", handler.DeleteComment)
}

// CreateComment posts a comment on a review. Any authenticated user
// may comment on any review.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviewID, err := parseUUIDParam(r, "reviewID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var req CommentUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.commentService.Create(r.Context(), userID, reviewID, req.Text)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create comment")
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// MyComments lists all comments written by the caller.
func (h *CommentHandler) MyComments(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	comments, err := h.commentService.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list comments")
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// UpdateOwnedComment handles PUT /users/{userID}/comments/{commentID}.
// The path userID must match the caller.
func (h *CommentHandler) UpdateOwnedComment(w http.ResponseWriter, r *http.Request) {
	callerID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pathUserID, err := parseUUIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if pathUserID != callerID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	commentID, err := parseUUIDParam(r, "commentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req CommentUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.commentService.Update(r.Context(), callerID, commentID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			writeError(w, http.StatusForbidden, "forbidden")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "comment not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update comment")
		}
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// DeleteOwnedComment handles DELETE /users/{userID}/comments/{commentID}.
func (h *CommentHandler) DeleteOwnedComment(w http.ResponseWriter, r *http.Request) {
	callerID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	pathUserID, err := parseUUIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if pathUserID != callerID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	h.deleteAsOwner(w, r, callerID)
}

// DeleteComment handles DELETE /comments/{commentID}.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.deleteAsOwner(w, r, userID)
}

func (h *CommentHandler) deleteAsOwner(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	commentID, err := parseUUIDParam(r, "commentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.commentService.Delete(r.Context(), userID, commentID); err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			writeError(w, http.StatusForbidden, "forbidden")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "comment not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete comment")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CommentUpsertRequest is the payload for creating or updating a comment.
type CommentUpsertRequest struct {
	Text string `json:"text"`
}

func (req *CommentUpsertRequest) validate() error {
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return errors.New("text is required")
	}
	return nil
}
