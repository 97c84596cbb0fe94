package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// member is one key/value pair of a JSON object, kept in file order.
type member struct {
	Key   string
	Value json.RawMessage
}

// decodeObject reads a JSON object preserving key order. Lesson order in
// the textbook file is meaningful and a Go map would lose it.
func decodeObject(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading object start: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var out []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading value of %q: %w", key, err)
		}
		out = append(out, member{Key: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading object end: %w", err)
	}
	return out, nil
}

// encodeObject writes members back as an indented JSON object in order.
func encodeObject(members []member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, m := range members {
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		var val bytes.Buffer
		if err := json.Indent(&val, m.Value, "  ", "  "); err != nil {
			return nil, fmt.Errorf("formatting %q: %w", m.Key, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val.Bytes())
		if i < len(members)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func findMember(members []member, key string) (json.RawMessage, bool) {
	for _, m := range members {
		if normalize(m.Key) == key {
			return m.Value, true
		}
	}
	return nil, false
}

// passageNumber accepts both "3번" and a bare 3 from spreadsheet exports.
type passageNumber string

func (p *passageNumber) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = passageNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("passage number: %w", err)
	}
	if i, err := strconv.Atoi(n.String()); err == nil {
		*p = passageNumber(strconv.Itoa(i) + "번")
		return nil
	}
	*p = passageNumber(n.String())
	return nil
}
