package insurance

import (
	"context"

	"github.com/google/uuid"
)

// InsurerRepository is the storage boundary for insurers.
type InsurerRepository interface {
	Create(ctx context.Context, ins *Insurer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Insurer, error)
	GetByName(ctx context.Context, name string) (*Insurer, error)
	List(ctx context.Context, limit, offset int) ([]*Insurer, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, ins *Insurer) error
}

// ClaimRepository is the storage boundary for claim requests.
type ClaimRepository interface {
	Create(ctx context.Context, claim *ClaimRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClaimRequest, error)
	GetByReference(ctx context.Context, ref string) (*ClaimRequest, error)
	List(ctx context.Context, limit, offset int) ([]*ClaimRequest, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status ClaimStatus) error
}
