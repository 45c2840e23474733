package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"
	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/api/authz"
	dbgen "github.com/codr1/turnero/internal/db/generated"
)

const clerkSessionCookie = "__session"

// clerkInitialized indicates whether the Clerk SDK has been initialized
var clerkInitialized bool

// InitClerk initializes Clerk SDK with the secret key
func InitClerk(secretKey string) {
	if secretKey == "" {
		log.Warn().Msg("Clerk secret key not configured")
		return
	}
	clerk.SetKey(secretKey)
	clerkInitialized = true
	log.Info().Msg("Clerk SDK initialized")
}

// HandleClerkCallback maps the verified Clerk user to a local user and sets
// the signed auth cookie. Users are provisioned out of band; unknown Clerk
// users are refused.
func HandleClerkCallback(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if limiter != nil && !limiter.Allow() {
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	if !clerkInitialized {
		logger.Error().Msg("Clerk not configured")
		http.Error(w, "Authentication service not available", http.StatusServiceUnavailable)
		return
	}

	claims, ok := clerk.SessionClaimsFromContext(r.Context())
	if !ok {
		logger.Warn().Msg("No Clerk session claims in context")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	clerkUser, err := user.Get(r.Context(), claims.Subject)
	if err != nil {
		logger.Error().Err(err).Str("clerk_user_id", claims.Subject).Msg("Failed to get Clerk user")
		http.Error(w, "Failed to verify user", http.StatusInternalServerError)
		return
	}

	localUser, err := findLocalUserFromClerk(r.Context(), clerkUser)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn().
				Str("clerk_user_id", claims.Subject).
				Msg("Clerk user has no matching local account")
			http.Error(w, "Account not found. Please contact the club.", http.StatusForbidden)
			return
		}
		logger.Error().Err(err).Msg("Failed to look up local user")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := SetAuthCookie(w, authUserFromDB(localUser)); err != nil {
		logger.Error().Err(err).Int64("user_id", localUser.ID).Msg("Failed to set auth cookie")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("user_id", localUser.ID).Bool("is_admin", localUser.IsAdmin).Msg("User signed in with Clerk")
	http.Redirect(w, r, "/", http.StatusFound)
}

func authUserFromDB(u dbgen.User) *authz.AuthUser {
	return &authz.AuthUser{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
	}
}

// findLocalUserFromClerk looks up the local user by linked Clerk id, then by
// primary email, then by any email. An email match links the Clerk id.
func findLocalUserFromClerk(ctx context.Context, clerkUser *clerk.User) (dbgen.User, error) {
	if queries == nil {
		return dbgen.User{}, errors.New("database not initialized")
	}

	if clerkUser.ID != "" {
		u, err := queries.GetUserByClerkID(ctx, sql.NullString{String: clerkUser.ID, Valid: true})
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return dbgen.User{}, err
		}
	}

	emails := make([]string, 0, len(clerkUser.EmailAddresses))
	if clerkUser.PrimaryEmailAddressID != nil {
		for _, email := range clerkUser.EmailAddresses {
			if email.ID == *clerkUser.PrimaryEmailAddressID {
				emails = append(emails, email.EmailAddress)
				break
			}
		}
	}
	for _, email := range clerkUser.EmailAddresses {
		emails = append(emails, email.EmailAddress)
	}

	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		u, err := queries.GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return dbgen.User{}, err
		}
		if clerkUser.ID != "" && !u.ClerkUserID.Valid {
			if err := queries.LinkClerkUser(ctx, dbgen.LinkClerkUserParams{
				ClerkUserID: sql.NullString{String: clerkUser.ID, Valid: true},
				ID:          u.ID,
			}); err != nil {
				return dbgen.User{}, err
			}
			u.ClerkUserID = sql.NullString{String: clerkUser.ID, Valid: true}
		}
		return u, nil
	}

	return dbgen.User{}, sql.ErrNoRows
}

// userFromClerkClaims resolves an already linked local user from verified
// session claims without calling the Clerk API.
func userFromClerkClaims(r *http.Request) (*authz.AuthUser, error) {
	if r == nil {
		return nil, nil
	}
	claims, ok := clerk.SessionClaimsFromContext(r.Context())
	if !ok || claims == nil || claims.Subject == "" {
		return nil, nil
	}
	if queries == nil {
		return nil, errors.New("auth queries not initialized")
	}

	u, err := queries.GetUserByClerkID(r.Context(), sql.NullString{String: claims.Subject, Valid: true})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return authUserFromDB(u), nil
}

// WithClerkSession is middleware that validates Clerk session tokens
// and adds session claims to the request context
func WithClerkSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !clerkInitialized {
			next.ServeHTTP(w, r)
			return
		}

		sessionToken, err := r.Cookie(clerkSessionCookie)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := jwt.Verify(r.Context(), &jwt.VerifyParams{
			Token: sessionToken.Value,
		})
		if err != nil {
			log.Ctx(r.Context()).Debug().Err(err).Msg("Invalid Clerk session token")
			next.ServeHTTP(w, r)
			return
		}

		ctx := clerk.ContextWithSessionClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
