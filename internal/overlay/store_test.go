package overlay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gameshelf/internal/catalog"
	"gameshelf/internal/common"
	"gameshelf/internal/logging"
	"gameshelf/internal/models"
	overlayrepo "gameshelf/internal/repositories/overlay"
)

// ---- helpers ----

type fakeIdentityProvider struct {
	current *models.Identity
}

func (f *fakeIdentityProvider) CurrentIdentity() *models.Identity { return f.current }

type fakePersister struct {
	calls int
	err   error
}

func (f *fakePersister) Persist(ctx context.Context) error {
	f.calls++
	return f.err
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

var testNow = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *fakeIdentityProvider, *fakePersister) {
	t.Helper()

	cat, err := catalog.NewFromSeed()
	require.NoError(t, err)

	provider := &fakeIdentityProvider{
		current: &models.Identity{ID: 1, DisplayName: "A", Email: "a@example.com", Role: models.RoleStandard},
	}
	persister := &fakePersister{}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	store := NewStore(overlayrepo.NewInMemoryRepository(), provider, cat, persister, fixedClock{now: testNow}, log)
	return store, provider, persister
}

func status(s models.Status) *models.Status { return &s }
func rating(r float64) *float64             { return &r }

// ---- upsert ----

func TestUpsert_CreatesRecord(t *testing.T) {
	store, _, persister := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, 1, 2, Update{Status: status(models.StatusPlaying), Rating: rating(7)}))

	records, err := store.Query(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.StatusPlaying, records[0].Status)
	require.Equal(t, 7.0, records[0].Rating)
	require.Equal(t, testNow, records[0].UpdatedAt)
	require.Equal(t, 1, persister.calls)
}

func TestUpsert_PartialUpdateKeepsOtherFields(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, 1, 2, Update{Status: status(models.StatusPlaying), Rating: rating(7)}))
	require.NoError(t, store.Upsert(ctx, 1, 2, Update{Status: status(models.StatusCompleted)}))

	records, err := store.Query(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.StatusCompleted, records[0].Status)
	require.Equal(t, 7.0, records[0].Rating)
}

func TestUpsert_RatingOnlyCreate(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	// A rating without a status still creates the record; the status
	// defaults to none and the item counts as rated.
	require.NoError(t, store.Upsert(ctx, 1, 3, Update{Rating: rating(8.5)}))

	records, err := store.Query(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.StatusNone, records[0].Status)
	require.Equal(t, 8.5, records[0].Rating)
}

func TestUpsert_StatusNoneRemovesRecord(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, 1, 2, Update{Status: status(models.StatusPlaying), Rating: rating(9)}))
	require.NoError(t, store.Upsert(ctx, 1, 2, Update{Status: status(models.StatusNone)}))

	records, err := store.Query(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestUpsert_StatusNoneOnAbsentPairIsNoop(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, 1, 2, Update{Status: status(models.StatusNone)}))

	records, err := store.Query(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestUpsert_RatingZeroedDropsDefaultedRecord(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, 1, 3, Update{Rating: rating(8.5)}))
	require.NoError(t, store.Upsert(ctx, 1, 3, Update{Rating: rating(0)}))

	// none/unrated must not be stored: absence is the canonical form.
	records, err := store.Query(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestUpsert_Idempotent(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	update := Update{Status: status(models.StatusCompleted), Rating: rating(9.5)}
	require.NoError(t, store.Upsert(ctx, 1, 2, update))
	first, err := store.Query(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, store.Upsert(ctx, 1, 2, update))
	second, err := store.Query(ctx, 1)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

// ---- guards ----

func TestUpsert_AnonymousRejected(t *testing.T) {
	store, provider, _ := newTestStore(t)
	provider.current = nil

	err := store.Upsert(context.Background(), 1, 2, Update{Status: status(models.StatusPlaying)})
	require.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestUpsert_OtherOwnerRejected(t *testing.T) {
	store, _, _ := newTestStore(t)

	err := store.Upsert(context.Background(), 2, 2, Update{Status: status(models.StatusPlaying)})
	require.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestUpsert_NoAdminOverride(t *testing.T) {
	store, provider, _ := newTestStore(t)
	provider.current = &models.Identity{ID: 9, Role: models.RoleAdministrator}

	// Overlay mutation is strictly self-service, unlike identity mutation.
	err := store.Upsert(context.Background(), 1, 2, Update{Status: status(models.StatusPlaying)})
	require.True(t, errors.Is(err, common.ErrorUnauthorized))
}

func TestUpsert_RatingOutOfRange(t *testing.T) {
	store, _, _ := newTestStore(t)

	err := store.Upsert(context.Background(), 1, 2, Update{Rating: rating(10.5)})
	require.True(t, errors.Is(err, common.ErrorValidation))

	err = store.Upsert(context.Background(), 1, 2, Update{Rating: rating(-1)})
	require.True(t, errors.Is(err, common.ErrorValidation))
}

func TestUpsert_UnknownStatus(t *testing.T) {
	store, _, _ := newTestStore(t)

	err := store.Upsert(context.Background(), 1, 2, Update{Status: status(models.Status("paused"))})
	require.True(t, errors.Is(err, common.ErrorValidation))
}

func TestUpsert_UnknownItem(t *testing.T) {
	store, _, _ := newTestStore(t)

	err := store.Upsert(context.Background(), 1, 999, Update{Status: status(models.StatusPlaying)})
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestUpsert_PersistFailureSurfaces(t *testing.T) {
	store, _, persister := newTestStore(t)
	persister.err = errors.New("disk full")

	err := store.Upsert(context.Background(), 1, 2, Update{Status: status(models.StatusPlaying)})
	require.Error(t, err)
}
