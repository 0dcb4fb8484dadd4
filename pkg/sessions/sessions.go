// Package sessions holds helpers that act on many sessions at once.
package sessions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

// Lister lists sessions. *client.Client satisfies it.
type Lister interface {
	ListSessions(ctx context.Context, status models.Opt[models.StatusFilter]) (*models.ListSessionsResponse, error)
}

// AllCloser closes every session of the caller. *client.Client satisfies it.
type AllCloser interface {
	CloseAllSessions(ctx context.Context) (*models.CloseAllSessionsResponse, error)
}

// Closer closes one session. *client.Client satisfies it.
type Closer interface {
	CloseSession(ctx context.Context, sessionID uuid.UUID) (*models.CloseSessionResponse, error)
}

// ListAll lists the caller's sessions, filtered by status when it is set.
func ListAll(ctx context.Context, api Lister, status models.Opt[models.StatusFilter]) (*models.ListSessionsResponse, error) {
	return api.ListSessions(ctx, status)
}

// CloseAll closes every active session of the caller.
func CloseAll(ctx context.Context, api AllCloser) (*models.CloseAllSessionsResponse, error) {
	return api.CloseAllSessions(ctx)
}

// CloseEach closes the given sessions concurrently, at most limit at a time.
// Results are in the order of ids. The first failure cancels the rest.
func CloseEach(ctx context.Context, api Closer, ids []uuid.UUID, limit int) ([]*models.CloseSessionResponse, error) {
	results := make([]*models.CloseSessionResponse, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			resp, err := api.CloseSession(ctx, id)
			if err != nil {
				return fmt.Errorf("close session %s: %w", id, err)
			}
			results[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
