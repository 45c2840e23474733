package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/codr1/turnero/internal/testutil"
)

func setupClerkTest(t *testing.T) {
	t.Helper()

	database := testutil.NewTestDB(t)

	// Save and restore global state
	prevQueries := queries
	prevClerkInit := clerkInitialized
	t.Cleanup(func() {
		queries = prevQueries
		clerkInitialized = prevClerkInit
	})

	queries = database.Queries

	testutil.CreateUser(t, database, "socio@test.com", false)
	testutil.CreateUser(t, database, "admin@test.com", true)
	linked := testutil.CreateUser(t, database, "linked@test.com", false)
	if _, err := database.ExecContext(context.Background(),
		"UPDATE users SET clerk_user_id = ? WHERE id = ?", "user_linked", linked.ID,
	); err != nil {
		t.Fatalf("link clerk user: %v", err)
	}
}

func TestInitClerk(t *testing.T) {
	prevClerkInit := clerkInitialized
	t.Cleanup(func() {
		clerkInitialized = prevClerkInit
	})

	t.Run("empty secret key does not initialize", func(t *testing.T) {
		clerkInitialized = false
		InitClerk("")
		if clerkInitialized {
			t.Error("expected clerkInitialized to be false with empty key")
		}
	})

	t.Run("valid secret key initializes", func(t *testing.T) {
		clerkInitialized = false
		InitClerk("sk_test_xxx")
		if !clerkInitialized {
			t.Error("expected clerkInitialized to be true with valid key")
		}
	})
}

func TestFindLocalUserFromClerk(t *testing.T) {
	setupClerkTest(t)
	ctx := context.Background()

	t.Run("find by linked clerk id", func(t *testing.T) {
		u, err := findLocalUserFromClerk(ctx, &clerk.User{ID: "user_linked"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Email != "linked@test.com" {
			t.Errorf("expected linked@test.com, got %s", u.Email)
		}
	})

	t.Run("find by primary email and link", func(t *testing.T) {
		emailID := "email_123"
		u, err := findLocalUserFromClerk(ctx, &clerk.User{
			ID:                    "user_new",
			PrimaryEmailAddressID: &emailID,
			EmailAddresses: []*clerk.EmailAddress{
				{ID: "email_000", EmailAddress: "admin@test.com"},
				{ID: emailID, EmailAddress: "Socio@Test.com"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Email != "socio@test.com" {
			t.Errorf("expected primary email match, got %s", u.Email)
		}
		if !u.ClerkUserID.Valid || u.ClerkUserID.String != "user_new" {
			t.Errorf("expected clerk id to be linked, got %+v", u.ClerkUserID)
		}

		again, err := findLocalUserFromClerk(ctx, &clerk.User{ID: "user_new"})
		if err != nil || again.ID != u.ID {
			t.Fatalf("lookup by linked id = %+v, %v", again, err)
		}
	})

	t.Run("find by secondary email when primary not found", func(t *testing.T) {
		emailID := "email_123"
		u, err := findLocalUserFromClerk(ctx, &clerk.User{
			PrimaryEmailAddressID: &emailID,
			EmailAddresses: []*clerk.EmailAddress{
				{ID: emailID, EmailAddress: "notfound@test.com"},
				{ID: "email_456", EmailAddress: "admin@test.com"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !u.IsAdmin {
			t.Errorf("expected admin user, got %+v", u)
		}
	})

	t.Run("user not found returns ErrNoRows", func(t *testing.T) {
		_, err := findLocalUserFromClerk(ctx, &clerk.User{
			EmailAddresses: []*clerk.EmailAddress{
				{ID: "email_999", EmailAddress: "doesnotexist@test.com"},
			},
		})
		if !errors.Is(err, sql.ErrNoRows) {
			t.Fatalf("expected sql.ErrNoRows, got %v", err)
		}
	})

	t.Run("empty clerk user returns ErrNoRows", func(t *testing.T) {
		_, err := findLocalUserFromClerk(ctx, &clerk.User{})
		if !errors.Is(err, sql.ErrNoRows) {
			t.Fatalf("expected sql.ErrNoRows, got %v", err)
		}
	})
}

func TestUserFromClerkClaims(t *testing.T) {
	setupClerkTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	claims := &clerk.SessionClaims{}
	claims.Subject = "user_linked"
	req = req.WithContext(clerk.ContextWithSessionClaims(req.Context(), claims))

	u, err := UserFromRequest(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("UserFromRequest() error = %v", err)
	}
	if u == nil || u.Email != "linked@test.com" {
		t.Fatalf("UserFromRequest() = %+v", u)
	}
}

func TestHandleClerkCallbackNotConfigured(t *testing.T) {
	prevClerkInit := clerkInitialized
	t.Cleanup(func() { clerkInitialized = prevClerkInit })
	clerkInitialized = false

	rec := httptest.NewRecorder()
	HandleClerkCallback(rec, httptest.NewRequest(http.MethodGet, "/auth/clerk/callback", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestWithClerkSessionPassThrough(t *testing.T) {
	prevClerkInit := clerkInitialized
	t.Cleanup(func() { clerkInitialized = prevClerkInit })
	clerkInitialized = false

	called := false
	handler := WithClerkSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := clerk.SessionClaimsFromContext(r.Context()); ok {
			t.Error("expected no claims without Clerk")
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Fatal("expected next handler to be called")
	}
}
