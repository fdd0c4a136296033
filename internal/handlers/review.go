package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ratingly/apiserver/internal/services"
	"github.com/ratingly/apiserver/internal/store"
)

// ReviewHandler provides HTTP handlers for review mutations and the
// caller-scoped review listing.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler constructs a handler with the provided service.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ReviewRouter registers review routes on the given router. All of
// them require authentication.
func ReviewRouter(
	r chi.Router,
	reviewService *services.ReviewService,
	commentService *services.CommentService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewReviewHandler(reviewService)
	commentHandler := NewCommentHandler(commentService)

	r.With(authMiddleware).Get("/me", handler.MyReviews)
	r.With(authMiddleware).Delete("/{reviewID}", handler.DeleteReview)
	r.With(authMiddleware).Post("/{reviewID}/comments", commentHandler.CreateComment)
}

// MyReviews lists all reviews written by the caller.
func (h *ReviewHandler) MyReviews(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	reviews, err := h.reviewService.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// UpdateOwnedReview handles PUT /users/{userID}/reviews/{reviewID}.
// The path userID must match the caller.
func (h *ReviewHandler) UpdateOwnedReview(w http.ResponseWriter, r *http.Request) {
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

	reviewID, err := parseUUIDParam(r, "reviewID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var req ReviewUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	review, err := h.reviewService.Update(r.Context(), callerID, reviewID, req.Rating, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			writeError(w, http.StatusForbidden, "forbidden")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "review not found")
		case errors.Is(err, store.ErrInvalidRating):
			writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update review")
		}
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// DeleteReview removes the caller's review.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
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

	if err := h.reviewService.Delete(r.Context(), userID, reviewID); err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			writeError(w, http.StatusForbidden, "forbidden")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "review not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete review")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
