package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vape-shop/internal/domain"
	"vape-shop/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// stubUserRepository resolves roles for the admin gate
type stubUserRepository struct {
	users map[string]*domain.User
}

func (s *stubUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, nil
}

func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func serveAdminGate(t *testing.T, users map[string]*domain.User, email string) *httptest.ResponseRecorder {
	t.Helper()

	logger, _ := zap.NewDevelopment()
	gate := RequireAdmin(&stubUserRepository{users: users}, logger)

	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin", nil)
	if email != "" {
		req = req.WithContext(context.WithValue(req.Context(), UserEmailKey, email))
	}
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin_AllowsStoredAdminRole(t *testing.T) {
	users := map[string]*domain.User{
		"boss@x.com": {Email: "boss@x.com", Role: domain.RoleAdmin},
	}

	if w := serveAdminGate(t, users, "boss@x.com"); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// A valid token whose user record carries role "user" fails the gate.
func TestRequireAdmin_RejectsUserRole(t *testing.T) {
	users := map[string]*domain.User{
		"a@x.com": {Email: "a@x.com", Role: domain.RoleUser},
	}

	w := serveAdminGate(t, users, "a@x.com")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if !body.Error || body.Message != "unauthorized" {
		t.Errorf("body = %+v, want error flag with message unauthorized", body)
	}
}

// An authenticated email with no user record is rejected the same way as a
// non-admin role so the response does not reveal which emails are registered.
func TestRequireAdmin_RejectsUnknownEmailIdenticallyToNonAdmin(t *testing.T) {
	users := map[string]*domain.User{
		"a@x.com": {Email: "a@x.com", Role: domain.RoleUser},
	}

	known := serveAdminGate(t, users, "a@x.com")
	unknown := serveAdminGate(t, users, "ghost@x.com")

	if unknown.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", unknown.Code)
	}
	if known.Body.String() != unknown.Body.String() {
		t.Errorf("responses differ: %q vs %q", known.Body.String(), unknown.Body.String())
	}
}

func TestRequireAdmin_RejectsMissingContextEmail(t *testing.T) {
	if w := serveAdminGate(t, nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// The gate trusts the store, not the token: an admin role claim inside the
// token does not pass a caller whose record says otherwise.
func TestRequireAdmin_IgnoresTokenRoleSnapshot(t *testing.T) {
	users := map[string]*domain.User{
		"a@x.com": {Email: "a@x.com", Role: domain.RoleUser},
	}

	logger, _ := zap.NewDevelopment()
	gate := RequireAdmin(&stubUserRepository{users: users}, logger)

	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx := context.WithValue(context.Background(), UserEmailKey, "a@x.com")
	ctx = context.WithValue(ctx, UserRoleKey, domain.RoleAdmin)
	req := httptest.NewRequest("GET", "/admin", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 despite the admin claim in the token", w.Code)
	}
}
