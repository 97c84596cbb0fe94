package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestCopy_System(t *testing.T) {
	var got string
	var term bytes.Buffer
	c := &Copier{
		System:   func(text string) error { got = text; return nil },
		Terminal: &term,
	}

	m, err := c.Copy("교재: 2025 수능특강 영어")
	require.NoError(t, err)
	assert.Equal(t, MethodSystem, m)
	assert.Equal(t, "교재: 2025 수능특강 영어", got)
	assert.Zero(t, term.Len(), "no escape sequence when the system clipboard works")
}

func TestCopy_FallsBackToOSC52(t *testing.T) {
	var term bytes.Buffer
	c := &Copier{
		System:   func(string) error { return errors.New("no clipboard utilities available") },
		Terminal: &term,
	}

	m, err := c.Copy("주문서")
	require.NoError(t, err)
	assert.Equal(t, MethodOSC52, m)
	assert.Contains(t, term.String(), "\x1b]52;c;")
	assert.Contains(t, term.String(), base64.StdEncoding.EncodeToString([]byte("주문서")))
}

func TestCopy_BothFail(t *testing.T) {
	sysErr := errors.New("no clipboard utilities available")
	c := &Copier{
		System:   func(string) error { return sysErr },
		Terminal: failingWriter{},
	}

	_, err := c.Copy("주문서")
	require.Error(t, err)
	assert.ErrorIs(t, err, sysErr)
}

func TestCopy_NoTerminal(t *testing.T) {
	sysErr := errors.New("no clipboard utilities available")
	c := &Copier{System: func(string) error { return sysErr }}

	_, err := c.Copy("주문서")
	assert.ErrorIs(t, err, sysErr)
}

func TestCopy_Empty(t *testing.T) {
	c := &Copier{System: func(string) error { t.Fatal("must not be called"); return nil }}

	_, err := c.Copy("")
	assert.ErrorIs(t, err, ErrEmpty)
}
