package service

import (
	"context"
	"testing"
	"time"

	"vape-shop/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenService_IssueEmbedsStoredRole(t *testing.T) {
	repo := newMockUserRepository()
	repo.users["admin@x.com"] = &domain.User{
		ID:    primitive.NewObjectID(),
		Email: "admin@x.com",
		Role:  domain.RoleAdmin,
	}

	svc := NewTokenService(repo, "test-secret", time.Hour)

	token, err := svc.Issue(context.Background(), "admin@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.Email != "admin@x.com" {
		t.Errorf("claims email = %q, want admin@x.com", claims.Email)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("claims role = %q, want admin", claims.Role)
	}
}

// Issuance does not require registration: an unknown email gets a plain
// user token.
func TestTokenService_IssueDefaultsUnknownEmailToUserRole(t *testing.T) {
	svc := NewTokenService(newMockUserRepository(), "test-secret", time.Hour)

	token, err := svc.Issue(context.Background(), "nobody@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.Role != domain.RoleUser {
		t.Errorf("claims role = %q, want user", claims.Role)
	}
}

func TestTokenService_VerifyRejectsExpiredToken(t *testing.T) {
	repo := newMockUserRepository()

	// Sign a token whose validity window has already passed. The constructor
	// clamps non-positive validity, so build the service directly.
	expired := &tokenService{userRepo: repo, secret: "test-secret", validity: -time.Hour}
	token, err := expired.Issue(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	verifier := NewTokenService(repo, "test-secret", time.Hour)
	if _, err := verifier.Verify(token); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestTokenService_VerifyRejectsForeignSignature(t *testing.T) {
	repo := newMockUserRepository()

	issuer := NewTokenService(repo, "secret-a", time.Hour)
	verifier := NewTokenService(repo, "secret-b", time.Hour)

	token, err := issuer.Issue(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Error("token signed with a different secret should be rejected")
	}
}

func TestProperty_TokenRoundTripPreservesClaims(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("issue then verify yields the registered email and role", prop.ForAll(
		func(local string, role string) bool {
			email := local + "@example.com"

			repo := newMockUserRepository()
			repo.users[email] = &domain.User{
				ID:    primitive.NewObjectID(),
				Email: email,
				Role:  role,
			}

			svc := NewTokenService(repo, "test-secret", time.Hour)

			token, err := svc.Issue(context.Background(), email)
			if err != nil {
				return false
			}

			claims, err := svc.Verify(token)
			if err != nil {
				return false
			}

			return claims.Email == email && claims.Role == role
		},
		gen.Identifier(),
		gen.OneConstOf(domain.RoleAdmin, domain.RoleUser),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
