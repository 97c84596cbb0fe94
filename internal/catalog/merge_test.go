package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const existingDoc = `{
  "A": {"부교재": {"A": {"1강": [{"번호": "1번"}]}}},
  "B": {"부교재": {"B": {"1강": [{"번호": "1번"}]}}}
}`

func TestMerge_ReplacesInPlaceAndAppends(t *testing.T) {
	incoming := `{
  "C": {"Sheet1": {"부교재": {"C": {"1강": [{"번호": "1번"}, {"번호": "2번"}]}}}},
  "A": {"부교재": {"A": {"1강": [{"번호": "1번"}], "2강": [{"번호": "1번"}]}}}
}`
	res, err := Merge([]byte(existingDoc), []byte(incoming))
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, res.Added)
	assert.Equal(t, []string{"A"}, res.Replaced)

	top, err := decodeObject(res.Data)
	require.NoError(t, err)
	var keys []string
	for _, m := range top {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"A", "B", "C"}, keys)

	lessons, err := parseTextbook("A", top[0].Value)
	require.NoError(t, err)
	assert.Len(t, lessons, 2)
}

func TestMerge_RejectsUnknownLayout(t *testing.T) {
	_, err := Merge([]byte(existingDoc), []byte(`{"D": {"Sheet9": {}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `textbook "D"`)
}

func TestMerge_RejectsEmptyImport(t *testing.T) {
	_, err := Merge([]byte(existingDoc), []byte(`{}`))
	require.Error(t, err)
}

func TestImportFile_SeedsFromBundled(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(t.TempDir(), "new.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"새 교재": {"부교재": {"새 교재": {"1강": [{"번호": "1번"}]}}}}`), 0644))

	res, err := ImportFile(dir, src, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"새 교재"}, res.Added)

	c := Load(Dir(dir), zerolog.Nop())
	names := c.Textbooks()
	require.NotEmpty(t, names)
	assert.Equal(t, "2025 수능특강 영어", names[0])
	assert.Equal(t, "새 교재", names[len(names)-1])
}

func TestImportFile_RequiresDir(t *testing.T) {
	_, err := ImportFile("", "x.json", zerolog.Nop())
	require.Error(t, err)
}
