package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// MergeResult reports which textbooks an import touched.
type MergeResult struct {
	Added    []string
	Replaced []string
	Data     []byte
}

// Merge folds the textbooks of incoming into existing. A textbook present in
// both is replaced in place; new ones are appended. Every incoming textbook
// must use a known sheet layout.
func Merge(existing, incoming []byte) (*MergeResult, error) {
	var base []member
	if len(existing) > 0 {
		var err error
		base, err = decodeObject(existing)
		if err != nil {
			return nil, fmt.Errorf("reading existing textbooks: %w", err)
		}
	}
	add, err := decodeObject(incoming)
	if err != nil {
		return nil, fmt.Errorf("reading imported textbooks: %w", err)
	}
	if len(add) == 0 {
		return nil, fmt.Errorf("imported file contains no textbooks")
	}

	var errs []error
	for _, m := range add {
		if _, err := parseTextbook(normalize(m.Key), m.Value); err != nil {
			errs = append(errs, fmt.Errorf("textbook %q: %w", m.Key, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	res := &MergeResult{}
	index := make(map[string]int, len(base))
	for i, m := range base {
		index[normalize(m.Key)] = i
	}
	for _, m := range add {
		name := normalize(m.Key)
		if i, ok := index[name]; ok {
			base[i] = member{Key: base[i].Key, Value: m.Value}
			res.Replaced = append(res.Replaced, name)
			continue
		}
		index[name] = len(base)
		base = append(base, m)
		res.Added = append(res.Added, name)
	}

	res.Data, err = encodeObject(base)
	if err != nil {
		return nil, fmt.Errorf("encoding textbooks: %w", err)
	}
	return res, nil
}

// ImportFile merges the textbook document at src into dir/textbooks.json.
// When dir has no textbook file yet, the bundled textbooks are the base.
func ImportFile(dir, src string, logger zerolog.Logger) (*MergeResult, error) {
	if dir == "" {
		return nil, fmt.Errorf("a catalog directory is required to import")
	}
	incoming, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	target := filepath.Join(dir, TextbooksFile)
	existing, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		existing, err = fs.ReadFile(Bundled(), TextbooksFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}

	res, err := Merge(existing, incoming)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}
	if err := os.WriteFile(target, res.Data, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", target, err)
	}
	logger.Info().
		Str("file", target).
		Strs("added", res.Added).
		Strs("replaced", res.Replaced).
		Msg("textbooks imported")
	return res, nil
}
