package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/autentke/autentke/internal/encoding"
)

const packingList = "nome;custo;quantidade\nCorrente Veneziana;12,50;3\nPingente Coração;8,90;2\n"

func decodeAll(t *testing.T, in []byte) (string, string) {
	t.Helper()

	r, charset, err := encoding.Decode(bytes.NewReader(in))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestDecode(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().String(packingList)
	require.NoError(t, err)

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(packingList)
	require.NoError(t, err)

	tests := []struct {
		name        string
		input       []byte
		wantCharset string
	}{
		{
			name:        "UTF8",
			input:       []byte(packingList),
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF8WithBOM",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, packingList...),
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF16LE",
			input:       []byte(utf16),
			wantCharset: encoding.UTF16LE,
		},
		{
			name:  "Windows1252",
			input: []byte(latin1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset := decodeAll(t, tt.input)

			assert.Equal(t, packingList, got)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	got, charset := decodeAll(t, nil)

	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestDecode_RuneSplitBySniffWindow(t *testing.T) {
	// 4095 ASCII bytes put the two-byte "ç" across the sniff boundary.
	input := strings.Repeat("a", 4095) + "ção\n"

	got, charset := decodeAll(t, []byte(input))

	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, charset)
}
