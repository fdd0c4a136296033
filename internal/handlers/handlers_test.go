package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ratingly/apiserver/internal/services"
	"github.com/ratingly/apiserver/internal/store"
)

const testSecret = "test-secret"

// newTestEnv wires the real stores, services, and routers on top of a
// sqlmock database, mirroring the server's route layout.
func newTestEnv(t *testing.T) (*chi.Mux, sqlmock.Sqlmock) {
	t.Helper()

	dbConn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = dbConn.Close() })

	userService := services.NewUserService(store.NewUserRepository(dbConn))
	itemService := services.NewItemService(store.NewItemRepository(dbConn))
	reviewService := services.NewReviewService(store.NewReviewRepository(dbConn))
	commentService := services.NewCommentService(store.NewCommentRepository(dbConn))

	authMiddleware := RequireAuth(userService, testSecret)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			AuthRouter(r, userService, testSecret)
		})
		r.Route("/users", func(r chi.Router) {
			UserRouter(r, userService, reviewService, commentService, authMiddleware)
		})
		r.Route("/items", func(r chi.Router) {
			ItemRouter(r, itemService, reviewService, authMiddleware)
		})
		r.Route("/reviews", func(r chi.Router) {
			ReviewRouter(r, reviewService, commentService, authMiddleware)
		})
		r.Route("/comments", func(r chi.Router) {
			CommentRouter(r, commentService, authMiddleware)
		})
	})

	return router, mock
}

// expectAuthLookup queues the user resolution the auth middleware
// performs for every protected request.
func expectAuthLookup(mock sqlmock.Sqlmock, userID uuid.UUID, username string) {
	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
		AddRow(userID.String(), username, "x", time.Now())
	mock.ExpectQuery("SELECT id, username, password_hash, created_at FROM users WHERE id").
		WithArgs(userID).
		WillReturnRows(rows)
}

func authedToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := issueToken(userID, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func checkExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
