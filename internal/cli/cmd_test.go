package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/ordersheet/internal/catalog"
	"github.com/alexanderramin/ordersheet/internal/clipboard"
	"github.com/alexanderramin/ordersheet/internal/repository"
	"github.com/alexanderramin/ordersheet/internal/service"
	"github.com/alexanderramin/ordersheet/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCopier records the last copied text instead of touching the clipboard.
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

type appOption func(*appEnv)

// withCatalog swaps the bundled catalog for cat.
func withCatalog(cat *catalog.Catalog) appOption {
	return func(e *appEnv) { e.cat = cat }
}

// withCatalogDir lets imports write to dir.
func withCatalogDir(dir string) appOption {
	return func(e *appEnv) { e.dir = dir }
}

type appEnv struct {
	cat    *catalog.Catalog
	dir    string
	copier *fakeCopier
}

// testApp wires a full App backed by an in-memory index for CLI tests.
func testApp(t *testing.T, opts ...appOption) (*App, *fakeCopier) {
	t.Helper()
	env := &appEnv{cat: testutil.NewTestCatalog(t), copier: &fakeCopier{}}
	for _, opt := range opts {
		opt(env)
	}

	database := testutil.NewTestDB(t)
	catalogs := service.NewCatalogService(
		env.cat,
		env.dir,
		repository.NewSQLiteCatalogRepo(database),
		testutil.NewTestUoW(database),
		zerolog.Nop(),
	)
	require.NoError(t, catalogs.Reindex(context.Background()))

	return &App{
		Catalogs:   catalogs,
		Orders:     service.NewOrderService(catalogs, testutil.NewTestPolicies(t), env.copier),
		MessageURL: "https://example.com/chat",
		CopiedFor:  time.Second,
	}, env.copier
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Root command ---

func TestRootCmd_NonInteractivePrintsHelp(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "quote")
	assert.Contains(t, out, "catalog")
}

func TestRootCmd_InteractiveRunsWizard(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return true }
	var ran tea.Model
	app.RunProgram = func(m tea.Model) error {
		ran = m
		return nil
	}

	_, err := executeCmd(t, app)
	require.NoError(t, err)
	require.NotNil(t, ran)
	assert.IsType(t, appModel{}, ran)
}

func TestWizardCmd_PropagatesProgramError(t *testing.T) {
	app, _ := testApp(t)
	app.RunProgram = func(tea.Model) error { return errors.New("no tty") }

	_, err := executeCmd(t, app, "wizard")
	assert.EqualError(t, err, "no tty")
}

// --- quote ---

func TestQuoteCmd_TextbookVariant(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "quote",
		"--product", "textbook_variant",
		"--textbook", testutil.SuneungTextbook,
		"--passage", "1강 1번", "--passage", "1강 2번",
		"--type", "주제", "--type", "제목",
		"--email", testutil.TestEmail,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "교재: "+testutil.SuneungTextbook)
	assert.Contains(t, out, "1강 1번, 1강 2번")
	assert.Contains(t, out, "2문항씩")
	assert.Contains(t, out, "640원")
	assert.Contains(t, out, testutil.TestEmail)
}

func TestQuoteCmd_LessonExpandsToPassages(t *testing.T) {
	app, _ := testApp(t, withCatalog(testutil.NewSmallCatalog(t)))

	out, err := executeCmd(t, app, "quote",
		"--product", "textbook_variant",
		"--textbook", "작은 교재",
		"--lesson", "1강",
		"--type", "주제",
		"--per-type", "1",
		"--email", testutil.TestEmail,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "1강 1번, 1강 2번")
	assert.NotContains(t, out, "2강 1번")
}

func TestQuoteCmd_ReportsEveryProblem(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "quote",
		"--product", "textbook_variant",
		"--textbook", testutil.SuneungTextbook,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "강과 번호를 선택해주세요.")
	assert.Contains(t, err.Error(), "문제 유형을 선택해주세요.")
	assert.Contains(t, err.Error(), "이메일 주소를 입력해주세요.")
}

func TestQuoteCmd_UnknownProduct(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "quote", "--product", "poster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown product "poster"`)
}

func TestQuoteCmd_RequiresProduct(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "quote")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product")
}

func TestQuoteCmd_Copy(t *testing.T) {
	app, copier := testApp(t)

	out, err := executeCmd(t, app, "quote",
		"--product", "textbook_variant",
		"--textbook", testutil.SuneungTextbook,
		"--passage", "1강 1번",
		"--type", "주제",
		"--email", testutil.TestEmail,
		"--copy",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Copied to clipboard (system)")
	assert.Contains(t, copier.text, "교재: "+testutil.SuneungTextbook)
}

func TestQuoteCmd_CopyFailure(t *testing.T) {
	app, copier := testApp(t)
	copier.err = errors.New("no clipboard")

	_, err := executeCmd(t, app, "quote",
		"--product", "textbook_variant",
		"--textbook", testutil.SuneungTextbook,
		"--passage", "1강 1번",
		"--type", "주제",
		"--email", testutil.TestEmail,
		"--copy",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copying order")
}

// --- catalog ---

func TestCatalogListCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, testutil.SuneungTextbook)
	assert.Contains(t, out, testutil.OlympusTextbook)
}

func TestCatalogShowCmd(t *testing.T) {
	app, _ := testApp(t, withCatalog(testutil.NewSmallCatalog(t)))

	out, err := executeCmd(t, app, "catalog", "show", "작은 교재")
	require.NoError(t, err)
	assert.Contains(t, out, "2강")
	assert.Contains(t, out, "1번, 2번")
	assert.Contains(t, out, "https://example.com/small")
}

func TestCatalogShowCmd_NotFound(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "catalog", "show", "없는 교재")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "textbook not found")
}

func TestCatalogExamsCmd_FiltersByGrade(t *testing.T) {
	app, _ := testApp(t, withCatalog(testutil.NewSmallCatalog(t)))

	out, err := executeCmd(t, app, "catalog", "exams", "고1")
	require.NoError(t, err)
	assert.Contains(t, out, "고1_2024_03월")
	assert.Contains(t, out, "고1_2024_06월")

	out, err = executeCmd(t, app, "catalog", "exams", "고3")
	require.NoError(t, err)
	assert.Contains(t, out, "No mock exams found.")
}

func TestCatalogImportCmd(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(t.TempDir(), "new.json")
	require.NoError(t, os.WriteFile(src, []byte(`{
  "새 교재": {"부교재": {"새 교재": {"1강": [{"번호": "1번"}]}}}
}`), 0o644))
	app, _ := testApp(t, withCatalogDir(dir))

	out, err := executeCmd(t, app, "catalog", "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "새 교재")

	out, err = executeCmd(t, app, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "새 교재")
}

// --- policy ---

func TestPolicyListCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "policy", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "부교재 변형문제")
	assert.Contains(t, out, "번호별 교재 제작")
}
