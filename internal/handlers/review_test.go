package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

func TestCreateReview(t *testing.T) {
	router, mock := newTestEnv(t)

	userID := uuid.New()
	itemID := uuid.New()
	reviewID := uuid.New()

	expectAuthLookup(mock, userID, "moe")
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews (user_id, item_id, rating, text) VALUES ($1, $2, $3, $4) RETURNING id, created_at")).
		WithArgs(userID, itemID, 5, "great").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(reviewID.String(), time.Now()))

	req := jsonRequest(t, http.MethodPost, "/api/items/"+itemID.String()+"/reviews", map[string]any{
		"rating": 5,
		"text":   "great",
	})
	req.Header.Set("Authorization", "Bearer "+authedToken(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("create review status %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID     uuid.UUID `json:"id"`
		UserID uuid.UUID `json:"user_id"`
		ItemID uuid.UUID `json:"item_id"`
		Rating int       `json:"rating"`
		Text   string    `json:"text"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID != reviewID || created.UserID != userID || created.ItemID != itemID || created.Rating != 5 || created.Text != "great" {
		t.Fatalf("unexpected review: %+v", created)
	}

	checkExpectations(t, mock)
}

func TestCreateReviewDuplicate(t *testing.T) {
	router, mock := newTestEnv(t)

	userID := uuid.New()
	itemID := uuid.New()

	expectAuthLookup(mock, userID, "moe")
	mock.ExpectQuery("INSERT INTO reviews").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "unique_user_item_review"})

	req := jsonRequest(t, http.MethodPost, "/api/items/"+itemID.String()+"/reviews", map[string]any{
		"rating": 1,
		"text":   "changed my mind",
	})
	req.Header.Set("Authorization", "Bearer "+authedToken(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	checkExpectations(t, mock)
}

func TestCreateReviewRatingOutOfRange(t *testing.T) {
	router, mock := newTestEnv(t)

	userID := uuid.New()

	for _, rating := range []int{0, 6, -1} {
		expectAuthLookup(mock, userID, "moe")

		req := jsonRequest(t, http.MethodPost, "/api/items/"+uuid.New().String()+"/reviews", map[string]any{
			"rating": rating,
			"text":   "whatever",
		})
		req.Header.Set("Authorization", "Bearer "+authedToken(t, userID))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("rating %d: expected 400, got %d", rating, rec.Code)
		}
	}

	checkExpectations(t, mock)
}

func TestCreateReviewRequiresAuth(t *testing.T) {
	router, mock := newTestEnv(t)

	req := jsonRequest(t, http.MethodPost, "/api/items/"+uuid.New().String()+"/reviews", map[string]any{
		"rating": 5,
		"text":   "great",
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	checkExpectations(t, mock)
}

func TestUpdateReviewAsOwner(t *testing.T) {
	router, mock := newTestEnv(t)

	userID := uuid.New()
	itemID := uuid.New()
	reviewID := uuid.New()

	expectAuthLookup(mock, userID, "moe")
	rows := sqlmock.NewRows([]string{"id", "user_id", "item_id", "rating", "text", "created_at"}).
		AddRow(reviewID.String(), userID.String(), itemID.String(), 2, "edited", time.Now())
	mock.ExpectQuery("UPDATE reviews SET").
		WithArgs(userID, reviewID, 2, "edited").
		WillReturnRows(rows)

	req := jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/users/%s/reviews/%s", userID, reviewID),
		map[string]any{"rating": 2, "text": "edited"})
	req.Header.Set("Authorization", "Bearer "+authedToken(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update status %d: %s", rec.Code, rec.Body.String())
	}

	checkExpectations(t, mock)
}

func TestUpdateReviewPathUserMismatch(t *testing.T) {
	router, mock := newTestEnv(t)

	callerID := uuid.New()
	otherID := uuid.New()

	expectAuthLookup(mock, callerID, "moe")

	req := jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/users/%s/reviews/%s", otherID, uuid.New()),
		map[string]any{"rating": 1, "text": "hijack"})
	req.Header.Set("Authorization", "Bearer "+authedToken(t, callerID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	checkExpectations(t, mock)
}

func TestUpdateReviewNotOwner(t *testing.T) {
	router, mock := newTestEnv(t)

	callerID := uuid.New()
	ownerID := uuid.New()
	reviewID := uuid.New()

	expectAuthLookup(mock, callerID, "moe")
	// Scoped update matches nothing, then the unscoped lookup finds the
	// review owned by someone else.
	mock.ExpectQuery("UPDATE reviews SET").
		WithArgs(callerID, reviewID, 1, "hijack").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FROM reviews WHERE id").
		WithArgs(reviewID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_id", "rating", "text", "created_at"}).
			AddRow(reviewID.String(), ownerID.String(), uuid.New().String(), 5, "original", time.Now()))

	req := jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/users/%s/reviews/%s", callerID, reviewID),
		map[string]any{"rating": 1, "text": "hijack"})
	req.Header.Set("Authorization", "Bearer "+authedToken(t, callerID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	checkExpectations(t, mock)
}

func TestUpdateReviewMissing(t *testing.T) {
	router, mock := newTestEnv(t)

	callerID := uuid.New()
	reviewID := uuid.New()

	expectAuthLookup(mock, callerID, "moe")
	mock.ExpectQuery("UPDATE reviews SET").
		WithArgs(callerID, reviewID, 3, "ok").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FROM reviews WHERE id").
		WithArgs(reviewID).
		WillReturnError(sql.ErrNoRows)

	req := jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/users/%s/reviews/%s", callerID, reviewID),
		map[string]any{"rating": 3, "text": "ok"})
	req.Header.Set("Authorization", "Bearer "+authedToken(t, callerID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	checkExpectations(t, mock)
}

func TestDeleteReview(t *testing.T) {
	router, mock := newTestEnv(t)

	userID := uuid.New()
	reviewID := uuid.New()

	expectAuthLookup(mock, userID, "moe")
	mock.ExpectExec("DELETE FROM reviews").
		WithArgs(userID, reviewID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/"+reviewID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+authedToken(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	checkExpectations(t, mock)
}

func TestDeleteReviewNotOwner(t *testing.T) {
	router, mock := newTestEnv(t)

	callerID := uuid.New()
	reviewID := uuid.New()

	expectAuthLookup(mock, callerID, "moe")
	mock.ExpectExec("DELETE FROM reviews").
		WithArgs(callerID, reviewID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM reviews WHERE id").
		WithArgs(reviewID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_id", "rating", "text", "created_at"}).
			AddRow(reviewID.String(), uuid.New().String(), uuid.New().String(), 4, "not yours", time.Now()))

	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/"+reviewID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+authedToken(t, callerID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	checkExpectations(t, mock)
}

func TestMyReviews(t *testing.T) {
	router, mock := newTestEnv(t)

	userID := uuid.New()

	expectAuthLookup(mock, userID, "moe")
	mock.ExpectQuery("FROM reviews WHERE user_id").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_id", "rating", "text", "created_at"}).
			AddRow(uuid.New().String(), userID.String(), uuid.New().String(), 5, "great", time.Now()).
			AddRow(uuid.New().String(), userID.String(), uuid.New().String(), 2, "meh", time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/me", nil)
	req.Header.Set("Authorization", "Bearer "+authedToken(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var reviews []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&reviews); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}

	checkExpectations(t, mock)
}
