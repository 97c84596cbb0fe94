package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ordersheet/internal/catalog"
	"github.com/alexanderramin/ordersheet/internal/db"
	"github.com/alexanderramin/ordersheet/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo. Construct it from a *sql.DB for
// reads or from the DBTX of a unit of work for ReplaceAll.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

// NewSQLiteCatalogRepo creates a new SQLiteCatalogRepo.
func NewSQLiteCatalogRepo(conn db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: conn}
}

// ReplaceAll clears the index and writes the catalog's textbooks and mock
// exams. Run it inside a unit of work so readers never see a partial index.
func (r *SQLiteCatalogRepo) ReplaceAll(ctx context.Context, cat *catalog.Catalog) error {
	for _, table := range []string{"passages", "lessons", "textbooks", "mock_exams"} {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i, tb := range cat.AllTextbooks() {
		link, _ := cat.TextbookLink(tb.Name)
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO textbooks (name, position, link_url, link_description) VALUES (?, ?, ?, ?)`,
			tb.Name, i, nullableString(link.URL), nullableString(link.Description),
		); err != nil {
			return fmt.Errorf("inserting textbook %q: %w", tb.Name, err)
		}

		for j, l := range tb.Lessons {
			if _, err := r.db.ExecContext(ctx,
				`INSERT INTO lessons (textbook, name, position) VALUES (?, ?, ?)`,
				tb.Name, l.Name, j,
			); err != nil {
				return fmt.Errorf("inserting lesson %q of %q: %w", l.Name, tb.Name, err)
			}
			for k, p := range l.Passages {
				if _, err := r.db.ExecContext(ctx,
					`INSERT OR IGNORE INTO passages (textbook, lesson, number, position) VALUES (?, ?, ?, ?)`,
					tb.Name, l.Name, p, k,
				); err != nil {
					return fmt.Errorf("inserting passage %s %s: %w", l.Name, p, err)
				}
			}
		}
	}

	pos := 0
	for _, g := range cat.AllGradeExams() {
		for _, name := range g.Exams {
			if _, err := r.db.ExecContext(ctx,
				`INSERT OR IGNORE INTO mock_exams (name, grade, position) VALUES (?, ?, ?)`,
				name, g.Grade, pos,
			); err != nil {
				return fmt.Errorf("inserting mock exam %q: %w", name, err)
			}
			pos++
		}
	}
	return nil
}

func (r *SQLiteCatalogRepo) ListTextbooks(ctx context.Context) ([]TextbookSummary, error) {
	query := `SELECT t.name, t.link_url, t.link_description,
			(SELECT COUNT(*) FROM lessons l WHERE l.textbook = t.name),
			(SELECT COUNT(*) FROM passages p WHERE p.textbook = t.name)
		FROM textbooks t ORDER BY t.position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing textbooks: %w", err)
	}
	defer rows.Close()

	var out []TextbookSummary
	for rows.Next() {
		var (
			s         TextbookSummary
			url, desc sql.NullString
		)
		if err := rows.Scan(&s.Name, &url, &desc, &s.LessonCount, &s.PassageCount); err != nil {
			return nil, fmt.Errorf("scanning textbook: %w", err)
		}
		s.Link = catalog.Link{URL: stringFromNull(url), Description: stringFromNull(desc)}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteCatalogRepo) ListLessons(ctx context.Context, textbook string) ([]LessonRow, error) {
	query := `SELECT l.name, p.number
		FROM lessons l
		LEFT JOIN passages p ON p.textbook = l.textbook AND p.lesson = l.name
		WHERE l.textbook = ?
		ORDER BY l.position, p.position`
	rows, err := r.db.QueryContext(ctx, query, textbook)
	if err != nil {
		return nil, fmt.Errorf("listing lessons of %q: %w", textbook, err)
	}
	defer rows.Close()

	var out []LessonRow
	for rows.Next() {
		var (
			name   string
			number sql.NullString
		)
		if err := rows.Scan(&name, &number); err != nil {
			return nil, fmt.Errorf("scanning lesson: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].Name != name {
			out = append(out, LessonRow{Name: name})
		}
		if number.Valid {
			last := &out[len(out)-1]
			last.Passages = append(last.Passages, number.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		if _, err := r.GetTextbookLink(ctx, textbook); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) CountPassages(ctx context.Context, textbook string, lessons []string) (int, error) {
	if len(lessons) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(lessons)+1)
	args = append(args, textbook)
	for _, l := range lessons {
		args = append(args, l)
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM passages WHERE textbook = ? AND lesson IN (%s)`, placeholders(len(lessons)))

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting passages of %q: %w", textbook, err)
	}
	return n, nil
}

// ListMockExams lists the exams of a grade ("고1" or "고1모의고사"), or every
// exam when grade is empty.
func (r *SQLiteCatalogRepo) ListMockExams(ctx context.Context, grade string) ([]MockExamRow, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if grade == "" {
		rows, err = r.db.QueryContext(ctx, `SELECT grade, name FROM mock_exams ORDER BY position`)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT grade, name FROM mock_exams WHERE grade = ? ORDER BY position`, domain.GradeKey(grade))
	}
	if err != nil {
		return nil, fmt.Errorf("listing mock exams: %w", err)
	}
	defer rows.Close()

	var out []MockExamRow
	for rows.Next() {
		var m MockExamRow
		if err := rows.Scan(&m.Grade, &m.Name); err != nil {
			return nil, fmt.Errorf("scanning mock exam: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetTextbookLink returns ErrNotFound for unknown textbooks and an empty
// Link for textbooks without one.
func (r *SQLiteCatalogRepo) GetTextbookLink(ctx context.Context, name string) (catalog.Link, error) {
	var url, desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT link_url, link_description FROM textbooks WHERE name = ?`, name,
	).Scan(&url, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Link{}, fmt.Errorf("textbook %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return catalog.Link{}, fmt.Errorf("getting textbook %q: %w", name, err)
	}
	return catalog.Link{URL: stringFromNull(url), Description: stringFromNull(desc)}, nil
}

func (r *SQLiteCatalogRepo) PutMeta(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing meta %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) GetMeta(ctx context.Context, key string) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM catalog_meta WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("meta %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading meta %s: %w", key, err)
	}
	return v, nil
}
