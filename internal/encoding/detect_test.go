package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/ledger/internal/encoding"
)

func readAll(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader(t *testing.T) {
	const text = "Descrição;Montante\nCafé;12,50\n"

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	type testCase struct {
		name  string
		input []byte
		want  string
	}

	tests := []testCase{
		{
			name:  "UTF8Passthrough",
			input: []byte(text),
			want:  text,
		},
		{
			name:  "UTF8BOMStripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, text...),
			want:  text,
		},
		{
			name: "Windows1252",
			input: []byte{
				'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
				'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
			},
			want: "Descrição;Montante\n",
		},
		{
			name:  "UTF16LE",
			input: utf16le,
			want:  text,
		},
		{
			name:  "Empty",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readAll(t, tt.input))
		})
	}
}

func TestDetect(t *testing.T) {
	assert.Equal(t, encoding.UTF8, encoding.Detect([]byte("plain ascii")))
	assert.Equal(t, encoding.UTF8BOM, encoding.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, encoding.UTF16BE, encoding.Detect([]byte{0xFE, 0xFF, 0x00, 'a'}))
}
