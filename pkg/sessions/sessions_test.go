package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shehryarbajwa/aidolon-browser-go/pkg/models"
)

type fakeAPI struct {
	mu       sync.Mutex
	status   models.Opt[models.StatusFilter]
	closed   []uuid.UUID
	failOn   uuid.UUID
	allCount int
}

func (f *fakeAPI) ListSessions(_ context.Context, status models.Opt[models.StatusFilter]) (*models.ListSessionsResponse, error) {
	f.status = status
	return &models.ListSessionsResponse{Success: models.Some(true), Count: models.Some(0)}, nil
}

func (f *fakeAPI) CloseAllSessions(context.Context) (*models.CloseAllSessionsResponse, error) {
	return &models.CloseAllSessionsResponse{Success: models.Some(true), ClosedCount: models.Some(f.allCount)}, nil
}

func (f *fakeAPI) CloseSession(_ context.Context, id uuid.UUID) (*models.CloseSessionResponse, error) {
	if id == f.failOn {
		return nil, errors.New("SESSION_NOT_FOUND: no such session")
	}
	f.mu.Lock()
	f.closed = append(f.closed, id)
	f.mu.Unlock()
	return &models.CloseSessionResponse{Success: models.Some(true), SessionID: models.Some(id)}, nil
}

func TestListAllPassesFilter(t *testing.T) {
	api := &fakeAPI{}
	_, err := ListAll(context.Background(), api, models.Some(models.FilterClosed))
	require.NoError(t, err)
	assert.Equal(t, models.FilterClosed, api.status.Value())

	_, err = ListAll(context.Background(), api, models.Opt[models.StatusFilter]{})
	require.NoError(t, err)
	assert.False(t, api.status.IsSet())
}

func TestCloseAll(t *testing.T) {
	resp, err := CloseAll(context.Background(), &fakeAPI{allCount: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.ClosedCount.Value())
}

func TestCloseEachKeepsOrder(t *testing.T) {
	api := &fakeAPI{}
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	resps, err := CloseEach(context.Background(), api, ids, 2)
	require.NoError(t, err)
	require.Len(t, resps, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, resps[i].SessionID.Value())
	}
	assert.ElementsMatch(t, ids, api.closed)
}

func TestCloseEachFailure(t *testing.T) {
	bad := uuid.New()
	api := &fakeAPI{failOn: bad}

	_, err := CloseEach(context.Background(), api, []uuid.UUID{uuid.New(), bad}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad.String())
}
