// Package identities stores registered identities and their credentials.
// Implementations are in-memory; durability is the snapshot gateway's
// concern, fed through Export/Import.
package identities

import (
	"context"

	"gameshelf/internal/models"
)

// Repository owns identity records and the email-keyed credential table.
//
// Create assigns the next sequential id (never reused within a process run)
// and fails with common.ErrorEmailInUse when the email is taken. Update
// replaces the identity by id and re-keys the credential when the email
// changed, atomically: at no point do both emails resolve, or neither.
type Repository interface {
	Create(ctx context.Context, identity *models.Identity, cred models.Credential) (*models.Identity, error)
	GetByID(ctx context.Context, id int64) (*models.Identity, error)
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)
	Credential(ctx context.Context, email string) (models.Credential, error)
	Update(ctx context.Context, identity *models.Identity, cred models.Credential) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Identity, error)

	// Export and Import move the full identity/credential state in and out
	// of a snapshot. Import replaces all existing state.
	Export(ctx context.Context) ([]models.Identity, map[string]models.Credential, error)
	Import(ctx context.Context, idents []models.Identity, creds map[string]models.Credential) error
}
