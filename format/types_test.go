package format

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lut/errs"
)

func TestExtrapolationModeJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		mode ExtrapolationMode
	}{
		{"integer constant", `0`, Constant},
		{"integer linear", `1`, Linear},
		{"name constant", `"constant"`, Constant},
		{"name linear mixed case", `"Linear"`, Linear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m ExtrapolationMode
			require.NoError(t, json.Unmarshal([]byte(tt.data), &m))
			require.Equal(t, tt.mode, m)
		})
	}

	data, err := json.Marshal(Linear)
	require.NoError(t, err)
	require.Equal(t, `1`, string(data))
}

func TestExtrapolationModeJSONInvalid(t *testing.T) {
	for _, data := range []string{`2`, `-1`, `256`, `"cubic"`, `true`} {
		var m ExtrapolationMode
		err := json.Unmarshal([]byte(data), &m)
		require.ErrorIs(t, err, errs.ErrMalformedInput, data)
	}

	_, err := json.Marshal(ExtrapolationMode(7))
	require.Error(t, err)
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in   string
		want CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"ZSTD", CompressionZstd},
		{"s2", CompressionS2},
		{"lz4", CompressionLZ4},
	}
	for _, tt := range tests {
		got, err := ParseCompressionType(tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
		require.NotEqual(t, "Unknown", got.String())
	}

	_, err := ParseCompressionType("gzip")
	require.Error(t, err)
}
