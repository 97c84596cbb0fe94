package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/rs/zerolog"
)

// File names inside a catalog directory.
const (
	TextbooksFile = "textbooks.json"
	MockExamsFile = "mock-exams.json"
	LinksFile     = "textbook-links.json"
	SamplesFile   = "question-type-samples.json"
	OptionsFile   = "options.json"
)

//go:embed data/*.json
var bundled embed.FS

// Bundled returns the reference data compiled into the binary.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		panic(fmt.Sprintf("catalog: bundled data: %v", err))
	}
	return sub
}

// Dir returns a catalog directory on disk, or the bundled data when dir is
// empty. Files missing from dir are read from the bundled data, so a
// directory holding only an imported textbooks.json is complete.
func Dir(dir string) fs.FS {
	if dir == "" {
		return Bundled()
	}
	return overlay{top: os.DirFS(dir), base: Bundled()}
}

type overlay struct {
	top, base fs.FS
}

func (o overlay) Open(name string) (fs.File, error) {
	f, err := o.top.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return o.base.Open(name)
	}
	return f, err
}

type optionEntry struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           int64    `json:"price"`
	Size            int      `json:"size"`
	SubTypes        []string `json:"sub_types"`
	FreeForMockExam bool     `json:"free_for_mock_exam"`
}

func (o optionEntry) entry() domain.Entry {
	return domain.Entry{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		UnitPrice:   o.Price,
		SubTypes:    o.SubTypes,
		Size:        o.Size,
	}
}

type options struct {
	QuestionTypes []optionEntry `json:"question_types"`
	ExamSections  []optionEntry `json:"exam_sections"`
	ExamNumbers   []string      `json:"exam_numbers"`
	Packages      []optionEntry `json:"packages"`
	Materials     []optionEntry `json:"materials"`
}

// Load reads every reference file from fsys. A missing or malformed file
// is logged and that part of the catalog stays empty; Load never fails.
func Load(fsys fs.FS, logger zerolog.Logger) *Catalog {
	c := Empty()

	if data, ok := readFile(fsys, TextbooksFile, logger); ok {
		books, err := parseTextbooks(data, logger)
		if err != nil {
			warnMalformed(logger, TextbooksFile, err)
		} else {
			c.textbooks = books
		}
	}

	if data, ok := readFile(fsys, MockExamsFile, logger); ok {
		grades, err := parseMockExams(data)
		if err != nil {
			warnMalformed(logger, MockExamsFile, err)
		} else {
			c.mockExams = grades
		}
	}

	if data, ok := readFile(fsys, LinksFile, logger); ok {
		var links map[string]Link
		if err := json.Unmarshal(data, &links); err != nil {
			warnMalformed(logger, LinksFile, err)
		} else {
			for k, v := range links {
				c.links[normalize(k)] = v
			}
		}
	}

	if data, ok := readFile(fsys, SamplesFile, logger); ok {
		var samples map[string]string
		if err := json.Unmarshal(data, &samples); err != nil {
			warnMalformed(logger, SamplesFile, err)
		} else {
			for k, v := range samples {
				c.samples[normalize(k)] = v
			}
		}
	}

	if data, ok := readFile(fsys, OptionsFile, logger); ok {
		var opts options
		if err := json.Unmarshal(data, &opts); err != nil {
			warnMalformed(logger, OptionsFile, err)
		} else {
			c.options = normalizeOptions(opts)
		}
	}

	logger.Debug().
		Int("textbooks", len(c.textbooks)).
		Int("grades", len(c.mockExams)).
		Int("question_types", len(c.options.QuestionTypes)).
		Int("packages", len(c.options.Packages)).
		Int("materials", len(c.options.Materials)).
		Msg("catalog loaded")
	return c
}

func readFile(fsys fs.FS, name string, logger zerolog.Logger) ([]byte, bool) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		logger.Warn().Err(err).Str("file", name).Msg("catalog file unavailable, using empty data")
		return nil, false
	}
	return data, true
}

func warnMalformed(logger zerolog.Logger, name string, err error) {
	logger.Warn().Err(err).Str("file", name).Msg("catalog file malformed, using empty data")
}

// sheetLayouts are the nestings spreadsheet exports have produced, tried in order.
var sheetLayouts = [][]string{
	{"Sheet1", "부교재"},
	{"지문 데이터", "부교재"},
	{"부교재"},
}

func parseTextbooks(data []byte, logger zerolog.Logger) ([]Textbook, error) {
	top, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	var books []Textbook
	seen := map[string]int{}
	for _, m := range top {
		name := normalize(m.Key)
		lessons, err := parseTextbook(name, m.Value)
		if err != nil {
			logger.Warn().Err(err).Str("textbook", name).Msg("skipping textbook")
			continue
		}
		book := Textbook{Name: name, Lessons: lessons}
		if i, dup := seen[name]; dup {
			books[i] = book
			continue
		}
		seen[name] = len(books)
		books = append(books, book)
	}
	return books, nil
}

func parseTextbook(name string, raw json.RawMessage) ([]Lesson, error) {
	for _, layout := range sheetLayouts {
		path := append(slices.Clone(layout), name)
		content, ok := descend(raw, path)
		if !ok {
			continue
		}
		return parseLessons(content)
	}
	return nil, fmt.Errorf("no known sheet layout")
}

// descend follows a key path through nested objects.
func descend(raw json.RawMessage, path []string) (json.RawMessage, bool) {
	cur := raw
	for _, key := range path {
		members, err := decodeObject(cur)
		if err != nil {
			return nil, false
		}
		next, ok := findMember(members, normalize(key))
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func parseLessons(raw json.RawMessage) ([]Lesson, error) {
	members, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	lessons := make([]Lesson, 0, len(members))
	for _, m := range members {
		var items []struct {
			Number passageNumber `json:"번호"`
		}
		if err := json.Unmarshal(m.Value, &items); err != nil {
			return nil, fmt.Errorf("lesson %q: %w", m.Key, err)
		}
		l := Lesson{Name: normalize(m.Key)}
		for _, it := range items {
			if it.Number == "" {
				continue
			}
			l.Passages = append(l.Passages, normalize(string(it.Number)))
		}
		lessons = append(lessons, l)
	}
	return lessons, nil
}

func parseMockExams(data []byte) ([]GradeExams, error) {
	members, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	grades := make([]GradeExams, 0, len(members))
	for _, m := range members {
		var exams []string
		if err := json.Unmarshal(m.Value, &exams); err != nil {
			return nil, fmt.Errorf("grade %q: %w", m.Key, err)
		}
		for i := range exams {
			exams[i] = normalize(exams[i])
		}
		grades = append(grades, GradeExams{Grade: normalize(m.Key), Exams: exams})
	}
	return grades, nil
}

func normalizeOptions(o options) options {
	for _, list := range [][]optionEntry{o.QuestionTypes, o.ExamSections, o.Packages, o.Materials} {
		for i := range list {
			list[i].ID = normalize(list[i].ID)
			list[i].Name = normalize(list[i].Name)
		}
	}
	return o
}
