package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/ordersheet/internal/db"
	"github.com/alexanderramin/ordersheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexedRepo(t *testing.T) *SQLiteCatalogRepo {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	cat := testutil.NewTestCatalog(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteCatalogRepo(tx).ReplaceAll(ctx, cat)
	})
	require.NoError(t, err)
	return NewSQLiteCatalogRepo(database)
}

func TestCatalogRepo_ListTextbooks(t *testing.T) {
	repo := indexedRepo(t)

	got, err := repo.ListTextbooks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, testutil.SuneungTextbook, got[0].Name)
	assert.Equal(t, 4, got[0].LessonCount)
	assert.Equal(t, 15, got[0].PassageCount)
	assert.Equal(t, "EBS 수능 연계 교재", got[0].Link.Description)

	assert.Equal(t, testutil.OlympusTextbook, got[1].Name)
	assert.Equal(t, "능률 영어 I", got[2].Name)
	assert.Empty(t, got[2].Link.URL, "textbook without a link keeps an empty one")
}

func TestCatalogRepo_ListLessons_PreservesOrder(t *testing.T) {
	repo := indexedRepo(t)

	got, err := repo.ListLessons(context.Background(), testutil.SuneungTextbook)
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, l := range got {
		names[i] = l.Name
	}
	assert.Equal(t, []string{"1강", "2강", "3강", "10강"}, names)
	assert.Equal(t, []string{"1번", "2번", "3번", "4번"}, got[0].Passages)
	assert.Len(t, got[2].Passages, 3)
}

func TestCatalogRepo_ListLessons_UnknownTextbook(t *testing.T) {
	repo := indexedRepo(t)

	_, err := repo.ListLessons(context.Background(), "없는 교재")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalogRepo_CountPassages(t *testing.T) {
	repo := indexedRepo(t)
	ctx := context.Background()

	n, err := repo.CountPassages(ctx, testutil.SuneungTextbook, []string{"1강", "3강"})
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = repo.CountPassages(ctx, testutil.SuneungTextbook, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCatalogRepo_CountPassages_MatchesCatalog(t *testing.T) {
	repo := indexedRepo(t)
	cat := testutil.NewTestCatalog(t)

	for _, name := range cat.Textbooks() {
		var lessons []string
		for _, l := range cat.Lessons(name) {
			lessons = append(lessons, l.Name)
		}
		n, err := repo.CountPassages(context.Background(), name, lessons)
		require.NoError(t, err)
		assert.Equal(t, cat.PassageCount(name, lessons), n, name)
	}
}

func TestCatalogRepo_ListMockExams(t *testing.T) {
	repo := indexedRepo(t)
	ctx := context.Background()

	all, err := repo.ListMockExams(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 11)

	grade, err := repo.ListMockExams(ctx, "고2")
	require.NoError(t, err)
	require.Len(t, grade, 3)
	assert.Equal(t, "고2모의고사", grade[0].Grade)
	assert.Equal(t, "고2_2024_03월", grade[0].Name)

	byKey, err := repo.ListMockExams(ctx, "고2모의고사")
	require.NoError(t, err)
	assert.Equal(t, grade, byKey)
}

func TestCatalogRepo_GetTextbookLink(t *testing.T) {
	repo := indexedRepo(t)
	ctx := context.Background()

	link, err := repo.GetTextbookLink(ctx, testutil.OlympusTextbook)
	require.NoError(t, err)
	assert.Contains(t, link.URL, "kyobobook.co.kr")

	_, err = repo.GetTextbookLink(ctx, "없는 교재")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalogRepo_ReplaceAll_Replaces(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCatalogRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, testutil.NewTestCatalog(t)))
	require.NoError(t, repo.ReplaceAll(ctx, testutil.NewSmallCatalog(t)))

	got, err := repo.ListTextbooks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "작은 교재", got[0].Name)
	assert.Equal(t, 3, got[0].PassageCount)

	exams, err := repo.ListMockExams(ctx, "")
	require.NoError(t, err)
	assert.Len(t, exams, 2)
}

func TestCatalogRepo_ReplaceAll_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewSQLiteCatalogRepo(database).ReplaceAll(ctx, testutil.NewSmallCatalog(t)))

	injected := errors.New("disk full")
	uow := &testutil.FailingWriteUoW{DB: database, Table: "passages", Err: injected}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteCatalogRepo(tx).ReplaceAll(ctx, testutil.NewTestCatalog(t))
	})
	require.ErrorIs(t, err, injected)

	got, err := NewSQLiteCatalogRepo(database).ListTextbooks(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "failed replace must leave the previous index intact")
	assert.Equal(t, "작은 교재", got[0].Name)
}

func TestCatalogRepo_Meta(t *testing.T) {
	repo := NewSQLiteCatalogRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.GetMeta(ctx, "index_id")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, repo.PutMeta(ctx, "index_id", "a"))
	require.NoError(t, repo.PutMeta(ctx, "index_id", "b"))

	v, err := repo.GetMeta(ctx, "index_id")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
