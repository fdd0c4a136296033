package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ratingly/apiserver/internal/services"
)

// UserHandler provides the public user directory.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler constructs a handler with the provided service.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes on the given router, including the
// ownership-addressed review and comment mutations that live under
// /users/{userID}/... .
func UserRouter(
	r chi.Router,
	userService *services.UserService,
	reviewService *services.ReviewService,
	commentService *services.CommentService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewUserHandler(userService)
	reviewHandler := NewReviewHandler(reviewService)
	commentHandler := NewCommentHandler(commentService)

	r.Get("/", handler.ListUsers)
	r.With(authMiddleware).Put("/{userID}/reviews/{reviewID}", reviewHandler.UpdateOwnedReview)
	r.With(authMiddleware).Put("/{userID}/comments/{commentID}", commentHandler.UpdateOwnedComment)
	r.With(authMiddleware).Delete("/{userID}/comments/{commentID}", commentHandler.DeleteOwnedComment)
}

// ListUsers returns every user's id and username. The endpoint is
// unauthenticated, mirroring the profile directory the client renders.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}
