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

// ItemHandler provides HTTP handlers for the catalog and the
// per-item review routes.
type ItemHandler struct {
	itemService   *services.ItemService
	reviewService *services.ReviewService
}

// NewItemHandler constructs a handler with the provided services.
func NewItemHandler(itemService *services.ItemService, reviewService *services.ReviewService) *ItemHandler {
	return &ItemHandler{
		itemService:   itemService,
		reviewService: reviewService,
	}
}

// ItemRouter registers item routes on the given router.
func ItemRouter(
	r chi.Router,
	itemService *services.ItemService,
	reviewService *services.ReviewService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewItemHandler(itemService, reviewService)

	r.Get("/", handler.ListItems)
	r.Route("/{itemID}", func(r chi.Router) {
		r.Get("/", handler.GetItem)
		r.Get("/reviews", handler.ListItemReviews)
		r.Get("/reviews/{reviewID}", handler.GetItemReview)
		r.With(authMiddleware).Post("/reviews", handler.CreateReview)
	})
}

func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.itemService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) ListItemReviews(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	reviews, err := h.reviewService.ListByItem(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

func (h *ItemHandler) GetItemReview(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseUUIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	reviewID, err := parseUUIDParam(r, "reviewID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	review, err := h.reviewService.Get(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "review not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch review")
		return
	}
	if review.ItemID != itemID {
		writeError(w, http.StatusNotFound, "review not found")
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// CreateReview posts the caller's review on an item. The database
// rejects a second review by the same user on the same item.
func (h *ItemHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	itemID, err := parseUUIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
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

	review, err := h.reviewService.Create(r.Context(), userID, itemID, req.Rating, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateReview):
			writeError(w, http.StatusConflict, "you have already reviewed this item")
		case errors.Is(err, store.ErrInvalidRating):
			writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "item not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create review")
		}
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// ReviewUpsertRequest is the payload for creating or updating a review.
type ReviewUpsertRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

func (req *ReviewUpsertRequest) validate() error {
	if req.Rating < 1 || req.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
