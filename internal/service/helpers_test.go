package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/ordersheet/internal/clipboard"
	"github.com/alexanderramin/ordersheet/internal/repository"
	"github.com/alexanderramin/ordersheet/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

type fakeCopier struct {
	text string
	err  error
}

func (f *fakeCopier) Copy(text string) (clipboard.Method, error) {
	if f.err != nil {
		return "", f.err
	}
	f.text = text
	return clipboard.MethodSystem, nil
}

type serviceEnv struct {
	db       *sql.DB
	catalogs CatalogService
	orders   OrderService
	copier   *fakeCopier
	observer *recordingObserver
}

func newServiceEnv(t *testing.T, dir string) *serviceEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	copier := &fakeCopier{}

	catalogs := NewCatalogService(
		testutil.NewTestCatalog(t),
		dir,
		repository.NewSQLiteCatalogRepo(database),
		testutil.NewTestUoW(database),
		zerolog.Nop(),
		obs,
	)
	require.NoError(t, catalogs.Reindex(context.Background()))

	return &serviceEnv{
		db:       database,
		catalogs: catalogs,
		orders:   NewOrderService(catalogs, testutil.NewTestPolicies(t), copier, obs),
		copier:   copier,
		observer: obs,
	}
}
