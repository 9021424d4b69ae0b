// Package services contains the application services of the cyberdoom
// builder. This file implements the session and credit manager: login with
// daily credit rollover, signup gated by invite keys, session restore and
// logout, generation debits, and admin self-elevation.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/cyberdoom/internal/auth"
	"github.com/dmitrijs2005/cyberdoom/internal/common"
	"github.com/dmitrijs2005/cyberdoom/internal/config"
	"github.com/dmitrijs2005/cyberdoom/internal/logging"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
	"github.com/dmitrijs2005/cyberdoom/internal/store"
	"github.com/google/uuid"
)

// SignupBonusCredits is the balance a fresh account starts with, before the
// first login runs the daily-credit path.
const SignupBonusCredits = 5

// dateLayout formats the local calendar date used for the daily rollover.
const dateLayout = "2006-01-02"

// nowFn is a test seam for the clock.
var nowFn = time.Now

// SessionService owns authentication and the credit balance rules.
//
// Contract:
//   - Login: verify credentials, apply the daily credit rollover, establish
//     the persisted session.
//   - Signup: create an account gated by an invite key, then log it in.
//   - Restore: rehydrate the session after a restart; expired sessions are
//     cleared and reported.
//   - DebitForGeneration: charge one credit per generation; admins are exempt.
//   - ElevateToAdmin: privileged-action gate over a configured code hash.
//
// Every user mutation also rewrites the session copy when it belongs to the
// mutated user, keeping the denormalized snapshot consistent.
type SessionService struct {
	store *store.Store
	cfg   *config.Config
	log   logging.Logger
}

// NewSessionService constructs a SessionService over the entity store.
func NewSessionService(st *store.Store, cfg *config.Config, log logging.Logger) *SessionService {
	return &SessionService{store: st, cfg: cfg, log: log}
}

// Login verifies (email, password) against the user collection. Unknown
// email and wrong password are indistinguishable: both yield
// common.ErrInvalidCredentials. On a calendar-date change since the last
// login, the daily free credits are added and the user is persisted BEFORE
// the session is established.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	today := nowFn().Format(dateLayout)
	if user.LastLoginDate != today {
		appCfg, err := s.store.Config(ctx)
		if err != nil {
			return nil, err
		}
		user.Credits += appCfg.DailyFreeCredits
		user.LastLoginDate = today
		if err := s.store.SaveUser(ctx, *user); err != nil {
			return nil, err
		}
		s.log.Info(ctx, "daily credits granted", "user", user.ID, "credits", user.Credits)
	}

	if err := s.establishSession(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Signup creates an account gated by an invite key and a unique email, then
// immediately performs Login so the daily-credit path runs on first use.
// Keys are reusable; the usedKeys bookkeeping is never enforced.
func (s *SessionService) Signup(ctx context.Context, email, password, secretKey string) (*models.User, error) {
	appCfg, err := s.store.Config(ctx)
	if err != nil {
		return nil, err
	}
	if !appCfg.HasSecretKey(secretKey) {
		return nil, common.ErrInvalidSecretKey
	}

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	suffix, err := common.MakeRandBase36String(5)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     "user_" + suffix,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
		Credits:      SignupBonusCredits,
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "user registered", "user", user.ID)

	return s.Login(ctx, email, password)
}

// Restore rehydrates the logged-in user from the persisted session. A missing
// session returns (nil, nil). An invalid or expired token clears the session
// and reports common.ErrSessionExpired.
func (s *SessionService) Restore(ctx context.Context) (*models.User, error) {
	session, err := s.store.Session(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if _, err := auth.GetUserIDFromToken(session.Token, []byte(s.cfg.SessionSecret)); err != nil {
		_ = s.store.ClearSession(ctx)
		return nil, common.ErrSessionExpired
	}
	user := session.User
	return &user, nil
}

// Logout clears the session pointer only; the user record is untouched.
func (s *SessionService) Logout(ctx context.Context) error {
	return s.store.ClearSession(ctx)
}

// DebitForGeneration charges one credit to a non-admin user and persists
// both the user record and the session copy. Admins are a no-op. A zero
// balance yields common.ErrInsufficientCredits with the balance unchanged.
func (s *SessionService) DebitForGeneration(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return user, nil
	}
	if user.Credits <= 0 {
		return nil, common.ErrInsufficientCredits
	}

	user.Credits--
	if err := s.store.SaveUser(ctx, *user); err != nil {
		return nil, err
	}
	if err := refreshSessionCopy(ctx, s.store, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// ElevateToAdmin grants the admin role when suppliedCode matches the
// configured access code hash. An empty hash disables self-elevation.
func (s *SessionService) ElevateToAdmin(ctx context.Context, userID, suppliedCode string) (*models.User, error) {
	if s.cfg.AdminAccessCodeHash == "" || !auth.CheckPassword(s.cfg.AdminAccessCodeHash, suppliedCode) {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = true
	if err := s.store.SaveUser(ctx, *user); err != nil {
		return nil, err
	}
	if err := refreshSessionCopy(ctx, s.store, *user); err != nil {
		return nil, err
	}
	s.log.Warn(ctx, "user elevated to admin", "user", user.ID)
	return user, nil
}

// UpdateProfile changes the display username and keeps the session copy in
// sync.
func (s *SessionService) UpdateProfile(ctx context.Context, userID, username string) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Username = username
	if err := s.store.SaveUser(ctx, *user); err != nil {
		return nil, err
	}
	if err := refreshSessionCopy(ctx, s.store, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SessionService) establishSession(ctx context.Context, user models.User) error {
	token, err := auth.GenerateToken(user.ID, []byte(s.cfg.SessionSecret), s.cfg.SessionValidity)
	if err != nil {
		return err
	}
	return s.store.SetSession(ctx, models.Session{Token: token, User: user})
}

// refreshSessionCopy rewrites the session snapshot when it belongs to the
// mutated user. The token is preserved; only the cached user changes.
func refreshSessionCopy(ctx context.Context, st *store.Store, user models.User) error {
	session, err := st.Session(ctx)
	if err != nil {
		return err
	}
	if session == nil || session.User.ID != user.ID {
		return nil
	}
	session.User = user
	return st.SetSession(ctx, *session)
}
