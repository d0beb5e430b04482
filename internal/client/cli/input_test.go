package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetWithDefault(t *testing.T) {
	tests := []struct {
		name, input, current, want, prompt string
	}{
		{name: "empty keeps current", input: "\n", current: "/tmp/a.jpg", want: "/tmp/a.jpg", prompt: "Photo [/tmp/a.jpg]\n> "},
		{name: "new value replaces", input: "/tmp/b.jpg\n", current: "/tmp/a.jpg", want: "/tmp/b.jpg"},
		{name: "dash clears", input: "-\n", current: "caption", want: ""},
		{name: "no current", input: "x\n", current: "", want: "x", prompt: "Photo\n> "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetWithDefault(rdr(tt.input), "Photo", tt.current, &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.prompt != "" {
				assert.Equal(t, tt.prompt, out.String())
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		got, err := Confirm(rdr(input), "Sure?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, input)
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}
