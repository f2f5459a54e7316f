// Package session tracks the currently authenticated identity and exposes
// registration, login, logout, profile updates and account deletion as
// state transitions. Every successful mutation is persisted write-through
// before the call returns.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gameshelf/internal/auth"
	"gameshelf/internal/common"
	"gameshelf/internal/cryptox"
	"gameshelf/internal/logging"
	"gameshelf/internal/models"
	"gameshelf/internal/repositories/identities"
	"gameshelf/internal/storage"
	"gameshelf/internal/timex"
)

const saltSize = 32

// ProfileUpdate carries the optional fields of an updateProfile call.
// Nil fields keep their prior value. Role changes are administrator-only.
type ProfileUpdate struct {
	DisplayName *string
	Email       *string
	Password    *string
	Role        *models.Role
}

// Service is the identity session. It owns the current-identity pointer and
// the identity/credential collection behind it.
type Service struct {
	repo          identities.Repository
	persister     storage.Persister
	secretKey     []byte
	tokenValidity time.Duration
	clock         timex.Clock
	log           logging.Logger

	mu      sync.RWMutex
	current *models.Identity
	token   string
}

func NewService(repo identities.Repository, persister storage.Persister, secretKey []byte, tokenValidity time.Duration, clock timex.Clock, log logging.Logger) *Service {
	return &Service{
		repo:          repo,
		persister:     persister,
		secretKey:     secretKey,
		tokenValidity: tokenValidity,
		clock:         clock,
		log:           log,
	}
}

// Register creates a new standard identity, makes it the active one and
// persists the result. Ids are assigned sequentially and never reused.
func (s *Service) Register(ctx context.Context, name, email, password, confirmPassword string) (*models.Identity, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", common.ErrorValidation)
	}
	if password != confirmPassword {
		return nil, common.ErrorPasswordMismatch
	}

	salt := common.GenerateRandByteArray(saltSize)
	cred := models.Credential{
		Salt:     salt,
		Verifier: cryptox.DeriveVerifier([]byte(password), salt),
	}

	identity := &models.Identity{
		DisplayName: name,
		Email:       email,
		Role:        models.RoleStandard,
		CreatedAt:   s.clock.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, identity, cred)
	if err != nil {
		if errors.Is(err, common.ErrorEmailInUse) {
			return nil, common.ErrorEmailInUse
		}
		return nil, fmt.Errorf("error creating identity: %w", err)
	}

	if err := s.activate(ctx, created); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "identity registered", "id", created.ID, "email", created.Email)
	return copyIdentity(created), nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the same error so registered emails cannot be enumerated.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	identity, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	cred, err := s.repo.Credential(ctx, email)
	if err != nil {
		return nil, common.ErrorInternal
	}

	candidate := cryptox.DeriveVerifier([]byte(password), cred.Salt)
	if !cryptox.CheckVerifier(cred.Verifier, candidate) {
		return nil, common.ErrorInvalidCredentials
	}

	if err := s.activate(ctx, identity); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "identity logged in", "id", identity.ID)
	return copyIdentity(identity), nil
}

// Logout clears the active identity. It never fails: a persistence error is
// logged, the in-memory session is cleared regardless.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.persister.Persist(ctx); err != nil {
		s.log.Error(ctx, "failed to persist logout", "error", err)
	}

	s.log.Info(ctx, "identity logged out")
}

// CurrentIdentity returns the active identity, or nil when nobody is logged
// in. Pure read, no side effects.
func (s *Service) CurrentIdentity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyIdentity(s.current)
}

// GetIdentity looks up one identity by id.
func (s *Service) GetIdentity(ctx context.Context, id int64) (*models.Identity, error) {
	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyIdentity(identity), nil
}

// UpdateProfile applies the given fields to the target identity. Allowed
// for the target itself or an administrator. An email change rekeys the
// credential atomically with the identity update; a password change
// re-derives the verifier with a fresh salt.
func (s *Service) UpdateProfile(ctx context.Context, identityID int64, update ProfileUpdate) (*models.Identity, error) {
	caller := s.CurrentIdentity()
	if caller == nil || (caller.ID != identityID && !caller.IsAdministrator()) {
		return nil, common.ErrorUnauthorized
	}

	target, err := s.repo.GetByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	oldEmail := target.Email

	if update.DisplayName != nil {
		if *update.DisplayName == "" {
			return nil, fmt.Errorf("%w: display name must not be empty", common.ErrorValidation)
		}
		target.DisplayName = *update.DisplayName
	}
	if update.Email != nil {
		if *update.Email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", common.ErrorValidation)
		}
		target.Email = *update.Email
	}
	if update.Role != nil {
		if !caller.IsAdministrator() {
			return nil, common.ErrorUnauthorized
		}
		if !update.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, *update.Role)
		}
		target.Role = *update.Role
	}

	cred, err := s.repo.Credential(ctx, oldEmail)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", common.ErrorValidation)
		}
		salt := common.GenerateRandByteArray(saltSize)
		cred = models.Credential{
			Salt:     salt,
			Verifier: cryptox.DeriveVerifier([]byte(*update.Password), salt),
		}
	}

	if err := s.repo.Update(ctx, target, cred); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == target.ID {
		s.current = copyIdentity(target)
	}
	s.mu.Unlock()

	if err := s.persister.Persist(ctx); err != nil {
		return nil, fmt.Errorf("failed to persist profile update: %w", err)
	}

	s.log.Info(ctx, "profile updated", "id", target.ID, "by", caller.ID)
	return copyIdentity(target), nil
}

// DeleteAccount is the self-service deletion path: the caller may only
// delete their own account. Doing so also logs them out.
func (s *Service) DeleteAccount(ctx context.Context, identityID int64) error {
	caller := s.CurrentIdentity()
	if caller == nil || caller.ID != identityID {
		return common.ErrorUnauthorized
	}

	if err := s.repo.Delete(ctx, identityID); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.persister.Persist(ctx); err != nil {
		return fmt.Errorf("failed to persist account deletion: %w", err)
	}

	s.log.Info(ctx, "account deleted", "id", identityID)
	return nil
}

// DeleteAccountAsAdmin is the administrative deletion path. Administrators
// cannot delete their own account here; self-deletion goes through
// DeleteAccount.
func (s *Service) DeleteAccountAsAdmin(ctx context.Context, identityID int64) error {
	caller := s.CurrentIdentity()
	if caller == nil || !caller.IsAdministrator() {
		return common.ErrorUnauthorized
	}
	if caller.ID == identityID {
		return common.ErrorUnauthorized
	}

	if err := s.repo.Delete(ctx, identityID); err != nil {
		return err
	}

	if err := s.persister.Persist(ctx); err != nil {
		return fmt.Errorf("failed to persist account deletion: %w", err)
	}

	s.log.Info(ctx, "account deleted by administrator", "id", identityID, "by", caller.ID)
	return nil
}

// ListAllIdentities returns every identity, ordered by id.
// Administrator-only.
func (s *Service) ListAllIdentities(ctx context.Context) ([]models.Identity, error) {
	caller := s.CurrentIdentity()
	if !caller.IsAdministrator() {
		return nil, common.ErrorUnauthorized
	}

	return s.repo.List(ctx)
}

// Restore re-establishes the session persisted in a snapshot. The token
// must validate and its embedded id must match activeID; on any mismatch
// the process starts logged out. Restore itself never persists.
func (s *Service) Restore(ctx context.Context, activeID *int64, token string) {
	if activeID == nil || token == "" {
		return
	}

	tokenID, err := auth.IdentityIDFromToken(token, s.secretKey)
	if err != nil || tokenID != *activeID {
		s.log.Warn(ctx, "persisted session rejected", "id", *activeID, "error", err)
		return
	}

	identity, err := s.repo.GetByID(ctx, *activeID)
	if err != nil {
		s.log.Warn(ctx, "persisted session references unknown identity", "id", *activeID)
		return
	}

	s.mu.Lock()
	s.current = copyIdentity(identity)
	s.token = token
	s.mu.Unlock()

	s.log.Info(ctx, "session restored", "id", identity.ID)
}

// ActiveIdentityID returns the id of the active identity for snapshot
// assembly, or nil.
func (s *Service) ActiveIdentityID() *int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	id := s.current.ID
	return &id
}

// ActiveToken returns the session token paired with the active identity for
// snapshot assembly, or "".
func (s *Service) ActiveToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// activate makes identity the current one, issues a fresh session token and
// persists the transition.
func (s *Service) activate(ctx context.Context, identity *models.Identity) error {
	token, err := auth.GenerateToken(identity.ID, s.secretKey, s.tokenValidity, s.clock.Now())
	if err != nil {
		return common.ErrorInternal
	}

	s.mu.Lock()
	s.current = copyIdentity(identity)
	s.token = token
	s.mu.Unlock()

	if err := s.persister.Persist(ctx); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	return nil
}

func copyIdentity(identity *models.Identity) *models.Identity {
	if identity == nil {
		return nil
	}
	copied := *identity
	return &copied
}
