package identities

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gameshelf/internal/common"
	"gameshelf/internal/models"
)

func newIdentity(name, email string) *models.Identity {
	return &models.Identity{
		DisplayName: name,
		Email:       email,
		Role:        models.RoleStandard,
		CreatedAt:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func cred(tag string) models.Credential {
	return models.Credential{Salt: []byte("salt-" + tag), Verifier: []byte("verifier-" + tag)}
}

func TestCreate_AssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	a, err := repo.Create(ctx, newIdentity("A", "a@example.com"), cred("a"))
	require.NoError(t, err)
	b, err := repo.Create(ctx, newIdentity("B", "b@example.com"), cred("b"))
	require.NoError(t, err)

	require.Equal(t, int64(1), a.ID)
	require.Equal(t, int64(2), b.ID)
}

func TestCreate_EmailInUse(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	_, err := repo.Create(ctx, newIdentity("A", "a@example.com"), cred("a"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newIdentity("B", "a@example.com"), cred("b"))
	require.True(t, errors.Is(err, common.ErrorEmailInUse))
}

func TestDelete_NeverReusesID(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	a, err := repo.Create(ctx, newIdentity("A", "a@example.com"), cred("a"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, a.ID))

	b, err := repo.Create(ctx, newIdentity("B", "b@example.com"), cred("b"))
	require.NoError(t, err)
	require.Greater(t, b.ID, a.ID)
}

func TestDelete_RemovesCredential(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	a, err := repo.Create(ctx, newIdentity("A", "a@example.com"), cred("a"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, a.ID))

	_, err = repo.GetByEmail(ctx, "a@example.com")
	require.True(t, errors.Is(err, common.ErrorNotFound))
	_, err = repo.Credential(ctx, "a@example.com")
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestUpdate_RekeysCredentialOnEmailChange(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	a, err := repo.Create(ctx, newIdentity("A", "old@example.com"), cred("a"))
	require.NoError(t, err)

	updated := *a
	updated.Email = "new@example.com"
	require.NoError(t, repo.Update(ctx, &updated, cred("a")))

	// The old email must no longer resolve; the new one must.
	_, err = repo.GetByEmail(ctx, "old@example.com")
	require.True(t, errors.Is(err, common.ErrorNotFound))
	_, err = repo.Credential(ctx, "old@example.com")
	require.True(t, errors.Is(err, common.ErrorNotFound))

	got, err := repo.GetByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)

	c, err := repo.Credential(ctx, "new@example.com")
	require.NoError(t, err)
	require.Equal(t, cred("a"), c)
}

func TestUpdate_EmailTaken(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	a, err := repo.Create(ctx, newIdentity("A", "a@example.com"), cred("a"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newIdentity("B", "b@example.com"), cred("b"))
	require.NoError(t, err)

	updated := *a
	updated.Email = "b@example.com"
	err = repo.Update(ctx, &updated, cred("a"))
	require.True(t, errors.Is(err, common.ErrorEmailInUse))

	// Nothing changed: both originals still resolve.
	got, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
}

func TestUpdate_UnknownID(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	err := repo.Update(ctx, newIdentity("A", "a@example.com"), cred("a"))
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestList_SortedByID(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	for _, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
		_, err := repo.Create(ctx, newIdentity("X", email), cred(email))
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		require.Less(t, list[i-1].ID, list[i].ID)
	}
}

func TestImportExport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	_, err := repo.Create(ctx, newIdentity("A", "a@example.com"), cred("a"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newIdentity("B", "b@example.com"), cred("b"))
	require.NoError(t, err)

	idents, creds, err := repo.Export(ctx)
	require.NoError(t, err)

	other := NewInMemoryRepository()
	require.NoError(t, other.Import(ctx, idents, creds))

	gotIdents, gotCreds, err := other.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, idents, gotIdents)
	require.Equal(t, creds, gotCreds)

	// The id counter continues after the highest imported id.
	c, err := other.Create(ctx, newIdentity("C", "c@example.com"), cred("c"))
	require.NoError(t, err)
	require.Equal(t, int64(3), c.ID)
}

func TestImport_RejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	dupIDs := []models.Identity{
		{ID: 1, Email: "a@example.com"},
		{ID: 1, Email: "b@example.com"},
	}
	require.Error(t, repo.Import(ctx, dupIDs, nil))

	dupEmails := []models.Identity{
		{ID: 1, Email: "a@example.com"},
		{ID: 2, Email: "a@example.com"},
	}
	require.Error(t, repo.Import(ctx, dupEmails, nil))
}
