package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/pkg/committer"
)

// translateErr maps Spanner status codes onto the domain taxonomy.
func translateErr(op string, err error) error {
	switch spanner.ErrCode(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrNotFound, err)
	case codes.AlreadyExists:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Committer applies plans and translates store errors.
type Committer struct {
	inner *committer.Committer
}

// NewCommitter creates a Committer over client.
func NewCommitter(client *spanner.Client) contracts.Committer {
	return &Committer{inner: committer.NewCommitter(client)}
}

// Apply applies plan atomically.
func (c *Committer) Apply(ctx context.Context, plan *committer.CommitPlan) error {
	if err := c.inner.Apply(ctx, plan); err != nil {
		return translateErr("commit", err)
	}
	return nil
}
