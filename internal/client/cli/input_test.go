package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\n\n"), "Enter text", &out)
	require.NoError(t, err)
	require.Equal(t, "a\nb", got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, []byte("s3cret"), pw)
	require.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}

func TestGetLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Unix newlines, stop on empty line",
			input:    "a;1\nb;2\n\n",
			expected: []string{"a;1", "b;2"},
		},
		{
			name:     "Windows CRLF, stop on empty line",
			input:    "a;1\r\nb;2\r\n\r\n",
			expected: []string{"a;1", "b;2"},
		},
		{
			name:     "Immediate blank line gives empty slice",
			input:    "\n",
			expected: []string{},
		},
		{
			name:     "EOF without trailing blank line",
			input:    "a;1\nb;2",
			expected: []string{"a;1", "b;2"},
		},
		{
			name:     "Spaces are preserved (no trimming except CR/LF)",
			input:    " name ; value \n\n",
			expected: []string{" name ; value "},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GetLines(rdr(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"Saka", "Iron Age"}, SplitList(" Saka , Iron Age,, "))
	require.Equal(t, []string{}, SplitList(""))
}

func TestYesNo(t *testing.T) {
	for in, want := range map[string]bool{"y": true, "YES": true, "n": false, "": false, "maybe": false} {
		var out bytes.Buffer
		got, err := YesNo(rdr(in+"\n"), "Publish?", &out)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
		require.Equal(t, "Publish? [y/N]\n> ", out.String())
	}
}
