package identities

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gameshelf/internal/common"
	"gameshelf/internal/models"
)

// InMemoryRepository keeps identities and credentials in maps guarded by a
// mutex. The id counter only moves forward: deleting the identity with the
// highest id does not free that id for reuse.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int64]models.Identity
	emails map[string]int64
	creds  map[string]models.Credential
	lastID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[int64]models.Identity),
		emails: make(map[string]int64),
		creds:  make(map[string]models.Credential),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, identity *models.Identity, cred models.Credential) (*models.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[identity.Email]; taken {
		return nil, common.ErrorEmailInUse
	}

	r.lastID++
	created := *identity
	created.ID = r.lastID

	r.byID[created.ID] = created
	r.emails[created.Email] = created.ID
	r.creds[created.Email] = cred

	return &created, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &identity, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	identity := r.byID[id]
	return &identity, nil
}

func (r *InMemoryRepository) Credential(ctx context.Context, email string) (models.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cred, ok := r.creds[email]
	if !ok {
		return models.Credential{}, common.ErrorNotFound
	}
	return cred, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, identity *models.Identity, cred models.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[identity.ID]
	if !ok {
		return common.ErrorNotFound
	}

	if existing.Email != identity.Email {
		if _, taken := r.emails[identity.Email]; taken {
			return common.ErrorEmailInUse
		}
		delete(r.emails, existing.Email)
		delete(r.creds, existing.Email)
	}

	r.byID[identity.ID] = *identity
	r.emails[identity.Email] = identity.ID
	r.creds[identity.Email] = cred

	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}

	delete(r.byID, id)
	delete(r.emails, identity.Email)
	delete(r.creds, identity.Email)

	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Identity, 0, len(r.byID))
	for _, identity := range r.byID {
		out = append(out, identity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *InMemoryRepository) Export(ctx context.Context) ([]models.Identity, map[string]models.Credential, error) {
	idents, err := r.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	creds := make(map[string]models.Credential, len(r.creds))
	for email, cred := range r.creds {
		creds[email] = cred
	}

	return idents, creds, nil
}

func (r *InMemoryRepository) Import(ctx context.Context, idents []models.Identity, creds map[string]models.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[int64]models.Identity, len(idents))
	r.emails = make(map[string]int64, len(idents))
	r.creds = make(map[string]models.Credential, len(creds))
	r.lastID = 0

	for _, identity := range idents {
		if _, dup := r.byID[identity.ID]; dup {
			return fmt.Errorf("%w: duplicate identity id %d", common.ErrorValidation, identity.ID)
		}
		if _, dup := r.emails[identity.Email]; dup {
			return fmt.Errorf("%w: duplicate email %q", common.ErrorValidation, identity.Email)
		}
		r.byID[identity.ID] = identity
		r.emails[identity.Email] = identity.ID
		if identity.ID > r.lastID {
			r.lastID = identity.ID
		}
	}
	for email, cred := range creds {
		r.creds[email] = cred
	}

	return nil
}
