package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/rolling-paper/internal/config"
	"github.com/MKhiriev/rolling-paper/internal/logger"
	"github.com/MKhiriev/rolling-paper/internal/service"
	"github.com/MKhiriev/rolling-paper/internal/store"
	"github.com/MKhiriev/rolling-paper/internal/utils"
	"github.com/MKhiriev/rolling-paper/models"
)

// Cookie names used by the two authenticator variants.
const (
	tokenCookieName   = "token"
	sessionCookieName = "session_id"
)

// Authenticator abstracts how a logged-in user is represented between
// requests. Exactly one implementation is active per deployment, selected
// from config at startup: a signed JWT in a cookie, or a server-side
// session keyed by an opaque cookie.
type Authenticator interface {
	// Issue establishes a credential for the user and sets the HTTP-only
	// cookie on w. The token variant returns the signed token string so
	// API clients can carry it themselves; the session variant returns "".
	Issue(ctx context.Context, w http.ResponseWriter, user models.User) (string, error)

	// Identify resolves the request's credential to a live user account.
	// Returns [ErrNoCredential] when no cookie is present and
	// [ErrInvalidCredential] when the credential is expired, malformed,
	// or no longer maps to an account.
	Identify(r *http.Request) (models.User, error)

	// Clear invalidates the request's credential and expires the cookie.
	Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

func newAuthenticator(services *service.Services, sessions store.SessionStore, cfg config.Auth) (Authenticator, error) {
	switch cfg.Mode {
	case config.AuthModeToken:
		return &tokenAuthenticator{
			auth:          services.AuthService,
			users:         services.UserService,
			tokenDuration: cfg.TokenDuration,
		}, nil
	case config.AuthModeSession:
		return &sessionAuthenticator{
			sessions: sessions,
			users:    services.UserService,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownAuthMode, cfg.Mode)
	}
}

// tokenAuthenticator keeps identity in a signed, self-contained JWT stored
// in an HTTP-only cookie. No server-side state is held; logout only expires
// the cookie.
type tokenAuthenticator struct {
	auth          service.AuthService
	users         service.UserService
	tokenDuration time.Duration
}

func (a *tokenAuthenticator) Issue(ctx context.Context, w http.ResponseWriter, user models.User) (string, error) {
	token, err := a.auth.CreateToken(ctx, user)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token.SignedString,
		Path:     "/",
		MaxAge:   int(a.tokenDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return token.SignedString, nil
}

func (a *tokenAuthenticator) Identify(r *http.Request) (models.User, error) {
	cookie, err := r.Cookie(tokenCookieName)
	if err != nil {
		return models.User{}, ErrNoCredential
	}

	token, err := a.auth.ParseToken(r.Context(), cookie.Value)
	if err != nil {
		return models.User{}, ErrInvalidCredential
	}

	// refetch so a deleted account stops authenticating even while its
	// token is formally still valid
	user, err := a.users.GetUser(r.Context(), token.UserID)
	if err != nil {
		return models.User{}, ErrInvalidCredential
	}

	return user, nil
}

func (a *tokenAuthenticator) Clear(_ context.Context, w http.ResponseWriter, _ *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return nil
}

// sessionAuthenticator keeps identity in server-side session state keyed by
// an opaque cookie. Logout and account deletion invalidate the state itself.
type sessionAuthenticator struct {
	sessions store.SessionStore
	users    service.UserService
}

func (a *sessionAuthenticator) Issue(ctx context.Context, w http.ResponseWriter, user models.User) (string, error) {
	session, err := a.sessions.Create(ctx, user)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return "", nil
}

func (a *sessionAuthenticator) Identify(r *http.Request) (models.User, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return models.User{}, ErrNoCredential
	}

	session, err := a.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		return models.User{}, ErrInvalidCredential
	}

	user, err := a.users.GetUser(r.Context(), session.UserID)
	if err != nil {
		return models.User{}, ErrInvalidCredential
	}

	return user, nil
}

func (a *sessionAuthenticator) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := a.sessions.Delete(ctx, cookie.Value); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return nil
}

// auth is the middleware guarding the protected route group.
//
// It resolves the request's credential via the active [Authenticator] and
// stores the full [models.User] in the request context under
// [utils.CurrentUserCtxKey] so downstream handlers never re-verify
// credentials themselves.
//
// A request without any credential is redirected to the login view with
// HTTP 303; a present but invalid or expired credential gets HTTP 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		user, err := h.authenticator.Identify(r)
		if err != nil {
			switch {
			case errors.Is(err, ErrNoCredential):
				log.Debug().Str("uri", r.RequestURI).Msg("unauthenticated request, redirecting to login")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			default:
				log.Err(err).Msg("credential rejected")
				http.Error(w, ErrInvalidCredential.Error(), http.StatusUnauthorized)
				return
			}
		}

		ctx := context.WithValue(r.Context(), utils.CurrentUserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
