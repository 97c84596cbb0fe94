package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/ordersheet/internal/repository"
	"github.com/alexanderramin/ordersheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_ReindexWritesMeta(t *testing.T) {
	env := newServiceEnv(t, "")
	repo := repository.NewSQLiteCatalogRepo(env.db)
	ctx := context.Background()

	first, err := repo.GetMeta(ctx, MetaIndexID)
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	_, err = repo.GetMeta(ctx, MetaIndexedAt)
	require.NoError(t, err)

	require.NoError(t, env.catalogs.Reindex(ctx))
	second, err := repo.GetMeta(ctx, MetaIndexID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "each reindex gets a fresh id")

	evt := env.observer.last(t)
	assert.Equal(t, "reindex-catalog", evt.Name)
	assert.True(t, evt.Success)
	assert.Equal(t, 3, evt.Fields["textbooks"])
}

func TestCatalogService_ShowTextbook(t *testing.T) {
	env := newServiceEnv(t, "")

	detail, err := env.catalogs.ShowTextbook(context.Background(), testutil.OlympusTextbook)
	require.NoError(t, err)
	assert.Equal(t, 4, detail.LessonCount)
	assert.Equal(t, 8, detail.PassageCount)
	require.Len(t, detail.Lessons, 4)
	assert.Len(t, detail.Lessons[0].Passages, 2)
}

func TestCatalogService_ShowTextbook_NotFound(t *testing.T) {
	env := newServiceEnv(t, "")

	_, err := env.catalogs.ShowTextbook(context.Background(), "없는 교재")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCatalogService_ListMockExams(t *testing.T) {
	env := newServiceEnv(t, "")

	exams, err := env.catalogs.ListMockExams(context.Background(), "고3")
	require.NoError(t, err)
	require.Len(t, exams, 4)
	assert.Equal(t, "고3_2024_03월", exams[0].Name)
}

func TestCatalogService_Import(t *testing.T) {
	dir := t.TempDir()
	env := newServiceEnv(t, dir)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "new.json")
	require.NoError(t, os.WriteFile(src, []byte(`{
  "새 교재": {"부교재": {"새 교재": {"1강": [{"번호": "1번"}, {"번호": "2번"}]}}}
}`), 0o644))

	res, err := env.catalogs.Import(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"새 교재"}, res.Added)
	assert.Empty(t, res.Replaced)
	assert.Equal(t, filepath.Join(dir, "textbooks.json"), res.Path)

	assert.Contains(t, env.catalogs.Catalog().Textbooks(), "새 교재")
	detail, err := env.catalogs.ShowTextbook(ctx, "새 교재")
	require.NoError(t, err, "import must reindex")
	assert.Equal(t, 2, detail.PassageCount)

	books, err := env.catalogs.ListTextbooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 4, "bundled textbooks are kept")

	var imported bool
	for _, e := range env.observer.events {
		if e.Name == "import-textbooks" {
			imported = true
			assert.True(t, e.Success)
			assert.Equal(t, 1, e.Fields["added"])
		}
	}
	assert.True(t, imported)
}

func TestCatalogService_Import_RequiresDir(t *testing.T) {
	env := newServiceEnv(t, "")

	_, err := env.catalogs.Import(context.Background(), "missing.json")
	require.Error(t, err)

	evt := env.observer.last(t)
	assert.Equal(t, "import-textbooks", evt.Name)
	assert.False(t, evt.Success)
}
