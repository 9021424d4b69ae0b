package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/cyberdoom/internal/common"
	"github.com/dmitrijs2005/cyberdoom/internal/logging"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
	"github.com/dmitrijs2005/cyberdoom/internal/store"
)

// AdminService exposes the privileged operations. Every method checks the
// acting user's admin flag before touching anything.
type AdminService struct {
	store *store.Store
	log   logging.Logger
}

// NewAdminService returns a service bound to the given store.
func NewAdminService(st *store.Store, log logging.Logger) *AdminService {
	return &AdminService{store: st, log: log}
}

// ConfigUpdate is a partial update of the application config. Nil fields are
// left untouched.
type ConfigUpdate struct {
	DailyFreeCredits  *int
	FirebaseConfigRaw *string
}

func requireAdmin(acting *models.User) error {
	if acting == nil || !acting.IsAdmin {
		return common.ErrorUnauthorized
	}
	return nil
}

// ListUsers returns every registered user.
func (a *AdminService) ListUsers(ctx context.Context, acting *models.User) ([]models.User, error) {
	if err := requireAdmin(acting); err != nil {
		return nil, err
	}
	return a.store.Users(ctx)
}

// GrantCredits adds amount credits to the target user's balance. The amount
// must be positive.
func (a *AdminService) GrantCredits(ctx context.Context, acting *models.User, targetID string, amount int) (*models.User, error) {
	if err := requireAdmin(acting); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: grant amount must be positive", common.ErrorInternal)
	}
	user, err := a.store.FindUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	user.Credits += amount
	if err := a.store.SaveUser(ctx, *user); err != nil {
		return nil, err
	}
	if err := refreshSessionCopy(ctx, a.store, *user); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "credits granted", "user", user.ID, "amount", amount, "balance", user.Credits)
	return user, nil
}

// UpdateConfig applies a partial update to the application config.
func (a *AdminService) UpdateConfig(ctx context.Context, acting *models.User, update ConfigUpdate) (*models.AppConfig, error) {
	if err := requireAdmin(acting); err != nil {
		return nil, err
	}
	cfg, err := a.store.Config(ctx)
	if err != nil {
		return nil, err
	}
	if update.DailyFreeCredits != nil {
		cfg.DailyFreeCredits = *update.DailyFreeCredits
	}
	if update.FirebaseConfigRaw != nil {
		cfg.FirebaseConfigRaw = *update.FirebaseConfigRaw
	}
	if err := a.store.SetConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AddSecretKey registers a new invitation key. Adding an existing key is a
// no-op.
func (a *AdminService) AddSecretKey(ctx context.Context, acting *models.User, key string) (*models.AppConfig, error) {
	if err := requireAdmin(acting); err != nil {
		return nil, err
	}
	cfg, err := a.store.Config(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(cfg.SecretKeys, key) {
		cfg.SecretKeys = append(cfg.SecretKeys, key)
		if err := a.store.SetConfig(ctx, cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// GenerateSecretKey mints a random invitation key and registers it.
func (a *AdminService) GenerateSecretKey(ctx context.Context, acting *models.User) (string, error) {
	if err := requireAdmin(acting); err != nil {
		return "", err
	}
	key, err := common.MakeRandHexString(4)
	if err != nil {
		return "", err
	}
	if _, err := a.AddSecretKey(ctx, acting, key); err != nil {
		return "", err
	}
	return key, nil
}

// RemoveSecretKey retires an invitation key so it can no longer be used for
// signup. Removing an unknown key is a no-op.
func (a *AdminService) RemoveSecretKey(ctx context.Context, acting *models.User, key string) (*models.AppConfig, error) {
	if err := requireAdmin(acting); err != nil {
		return nil, err
	}
	cfg, err := a.store.Config(ctx)
	if err != nil {
		return nil, err
	}
	if i := slices.Index(cfg.SecretKeys, key); i >= 0 {
		cfg.SecretKeys = slices.Delete(cfg.SecretKeys, i, i+1)
		if err := a.store.SetConfig(ctx, cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// ResetStore wipes every persisted collection, returning the instance to its
// factory state. Accounts, projects, config overrides, and the session are
// all destroyed.
func (a *AdminService) ResetStore(ctx context.Context, acting *models.User) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}
	if err := a.store.Reset(ctx); err != nil {
		return err
	}
	a.log.Warn(ctx, "entity store wiped", "by", acting.ID)
	return nil
}
