// Package app wires the game shelf core: catalog, identity session, overlay
// store, merge view and the snapshot gateway. It replaces the ambient
// singletons of a typical UI shell with one explicitly constructed object
// whose lifetime is the process.
package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gameshelf/internal/catalog"
	"gameshelf/internal/common"
	"gameshelf/internal/config"
	"gameshelf/internal/cryptox"
	"gameshelf/internal/logging"
	"gameshelf/internal/merge"
	"gameshelf/internal/models"
	"gameshelf/internal/overlay"
	identityrepo "gameshelf/internal/repositories/identities"
	overlayrepo "gameshelf/internal/repositories/overlay"
	"gameshelf/internal/session"
	"gameshelf/internal/stats"
	"gameshelf/internal/storage"
	"gameshelf/internal/timex"
)

// App is the assembled store. Collaborators (UI shells, tests) construct
// one App and call its services in-process; nothing here listens on a
// network or reads a terminal.
type App struct {
	cfg     *config.Config
	log     logging.Logger
	clock   timex.Clock
	catalog *catalog.Catalog
	gateway storage.Gateway

	identityRepo identityrepo.Repository
	overlayRepo  overlayrepo.Repository

	Session *session.Service
	Overlay *overlay.Store
	Merge   *merge.View
}

// New builds an App with the gateway selected by cfg and the real clock,
// then restores state from the latest snapshot (or seeds a fresh store).
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	gateway, err := storage.NewGateway(ctx, cfg.StorageBackend, cfg.SnapshotPath, cfg.DatabaseDSN, log)
	if err != nil {
		return nil, err
	}
	return NewWithGateway(ctx, cfg, log, gateway, timex.RealClock{})
}

// NewWithGateway builds an App on an explicit gateway and clock. Tests use
// it to inject a memory gateway and a frozen clock.
func NewWithGateway(ctx context.Context, cfg *config.Config, log logging.Logger, gateway storage.Gateway, clock timex.Clock) (*App, error) {
	var cat *catalog.Catalog
	var err error
	if cfg.CatalogFile != "" {
		cat, err = catalog.NewFromFile(cfg.CatalogFile)
	} else {
		cat, err = catalog.NewFromSeed()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	a := &App{
		cfg:          cfg,
		log:          log,
		clock:        clock,
		catalog:      cat,
		gateway:      gateway,
		identityRepo: identityrepo.NewInMemoryRepository(),
		overlayRepo:  overlayrepo.NewInMemoryRepository(),
	}

	a.Session = session.NewService(a.identityRepo, a, []byte(cfg.SecretKey), cfg.SessionTokenValidityDuration, clock, log)
	a.Overlay = overlay.NewStore(a.overlayRepo, a.Session, cat, a, clock, log)
	a.Merge = merge.NewView(cat, a.Overlay)

	if err := a.restore(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// Catalog returns the immutable catalog.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Library returns the merge view for the active identity, or the plain
// catalog when nobody is logged in.
func (a *App) Library(ctx context.Context) ([]models.MergedItem, error) {
	return a.Merge.ForIdentity(ctx, a.Session.ActiveIdentityID())
}

// Stats summarizes the active identity's personal set.
func (a *App) Stats(ctx context.Context) (stats.Stats, error) {
	merged, err := a.Library(ctx)
	if err != nil {
		return stats.Stats{}, err
	}
	return stats.Summarize(merged), nil
}

// Persist assembles the current state into a snapshot and saves it through
// the gateway. Services call this after every successful mutation.
func (a *App) Persist(ctx context.Context) error {
	snap, err := a.snapshot(ctx)
	if err != nil {
		return err
	}

	if err := a.gateway.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	a.log.Debug(ctx, "snapshot saved", "revision", snap.Revision)
	return nil
}

func (a *App) snapshot(ctx context.Context) (*models.Snapshot, error) {
	idents, creds, err := a.identityRepo.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export identities: %w", err)
	}
	records, err := a.overlayRepo.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export overlay records: %w", err)
	}

	return &models.Snapshot{
		Revision:           uuid.NewString(),
		SavedAt:            a.clock.Now().UTC(),
		Identities:         idents,
		Credentials:        creds,
		Overlay:            records,
		ActiveIdentityID:   a.Session.ActiveIdentityID(),
		ActiveSessionToken: a.Session.ActiveToken(),
	}, nil
}

// restore loads the latest snapshot into the repositories and re-establishes
// the persisted session. A missing or unreadable snapshot degrades to an
// empty store seeded with the configured administrator.
func (a *App) restore(ctx context.Context) error {
	snap, err := a.gateway.Load(ctx)
	if err != nil {
		a.log.Warn(ctx, "snapshot load failed, starting empty", "error", err)
		snap = nil
	}

	if snap == nil {
		return a.seed(ctx)
	}

	if err := a.identityRepo.Import(ctx, snap.Identities, snap.Credentials); err != nil {
		return fmt.Errorf("failed to import identities: %w", err)
	}
	if err := a.overlayRepo.Import(ctx, snap.Overlay); err != nil {
		return fmt.Errorf("failed to import overlay records: %w", err)
	}

	a.Session.Restore(ctx, snap.ActiveIdentityID, snap.ActiveSessionToken)

	a.log.Info(ctx, "snapshot loaded",
		"revision", snap.Revision, "identities", len(snap.Identities), "overlay", len(snap.Overlay))
	return nil
}

// seed creates the configured administrator account in a fresh store.
// Registration only produces standard identities, so without this seed the
// administrative operations would be unreachable. The seed goes straight to
// the repository because no identity exists yet to authorize a role change.
func (a *App) seed(ctx context.Context) error {
	if a.cfg.SeedAdminEmail == "" {
		return a.Persist(ctx)
	}

	salt := common.GenerateRandByteArray(32)
	cred := models.Credential{
		Salt:     salt,
		Verifier: cryptox.DeriveVerifier([]byte(a.cfg.SeedAdminPassword), salt),
	}
	identity := &models.Identity{
		DisplayName: a.cfg.SeedAdminName,
		Email:       a.cfg.SeedAdminEmail,
		Role:        models.RoleAdministrator,
		CreatedAt:   a.clock.Now().UTC(),
	}

	admin, err := a.identityRepo.Create(ctx, identity, cred)
	if err != nil {
		return fmt.Errorf("failed to seed administrator: %w", err)
	}

	if err := a.Persist(ctx); err != nil {
		return err
	}

	a.log.Info(ctx, "seeded administrator", "id", admin.ID, "email", admin.Email)
	return nil
}
