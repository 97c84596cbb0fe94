package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexanderramin/ordersheet/internal/catalog"
	"github.com/alexanderramin/ordersheet/internal/db"
	"github.com/alexanderramin/ordersheet/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Index metadata keys.
const (
	MetaIndexID   = "index_id"
	MetaIndexedAt = "indexed_at"
)

type catalogService struct {
	mu       sync.RWMutex
	cat      *catalog.Catalog
	dir      string
	repo     repository.CatalogRepo
	uow      db.UnitOfWork
	logger   zerolog.Logger
	observer UseCaseObserver
}

// NewCatalogService serves cat and keeps the SQLite index in step with it.
// dir is the catalog directory imports are written to; empty means the
// bundled data is in use and imports are refused.
func NewCatalogService(
	cat *catalog.Catalog,
	dir string,
	repo repository.CatalogRepo,
	uow db.UnitOfWork,
	logger zerolog.Logger,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		cat:      cat,
		dir:      dir,
		repo:     repo,
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cat
}

// Reindex replaces the index with the current catalog in one transaction.
func (s *catalogService) Reindex(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	cat := s.Catalog()
	indexID := uuid.New().String()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "reindex-catalog",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"index_id":  indexID,
				"textbooks": len(cat.Textbooks()),
			},
		})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteCatalogRepo(tx)
		if err := txRepo.ReplaceAll(ctx, cat); err != nil {
			return fmt.Errorf("indexing catalog: %w", err)
		}
		if err := txRepo.PutMeta(ctx, MetaIndexID, indexID); err != nil {
			return err
		}
		return txRepo.PutMeta(ctx, MetaIndexedAt, startedAt.Format(time.RFC3339))
	})
}

func (s *catalogService) ListTextbooks(ctx context.Context) ([]repository.TextbookSummary, error) {
	return s.repo.ListTextbooks(ctx)
}

func (s *catalogService) ShowTextbook(ctx context.Context, name string) (*TextbookDetail, error) {
	summaries, err := s.repo.ListTextbooks(ctx)
	if err != nil {
		return nil, err
	}
	for _, sum := range summaries {
		if sum.Name != name {
			continue
		}
		lessons, err := s.repo.ListLessons(ctx, name)
		if err != nil {
			return nil, err
		}
		return &TextbookDetail{TextbookSummary: sum, Lessons: lessons}, nil
	}
	return nil, fmt.Errorf("textbook %q: %w", name, repository.ErrNotFound)
}

func (s *catalogService) ListMockExams(ctx context.Context, grade string) ([]repository.MockExamRow, error) {
	return s.repo.ListMockExams(ctx, grade)
}

// Import merges src into the catalog directory, reloads the catalog from
// disk and reindexes it.
func (s *catalogService) Import(ctx context.Context, src string) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"source": filepath.Base(src)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-textbooks",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	merged, err := catalog.ImportFile(s.dir, src, s.logger)
	if err != nil {
		return nil, fmt.Errorf("importing textbooks: %w", err)
	}
	fields["added"] = len(merged.Added)
	fields["replaced"] = len(merged.Replaced)

	s.mu.Lock()
	s.cat = catalog.Load(catalog.Dir(s.dir), s.logger)
	s.mu.Unlock()

	if err = s.Reindex(ctx); err != nil {
		return nil, err
	}
	return &ImportResult{
		Added:    merged.Added,
		Replaced: merged.Replaced,
		Path:     filepath.Join(s.dir, catalog.TextbooksFile),
	}, nil
}
