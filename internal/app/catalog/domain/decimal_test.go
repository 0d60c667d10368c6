package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "42", want: "42"},
		{name: "signed", input: "-12.50", want: "-25/2"},
		{name: "max integer digits", input: "99999999999999999999999999999", want: "99999999999999999999999999999"},
		{name: "leading zeros do not count", input: "000000000000000000000000000000001", want: "1"},
		{name: "max scale", input: "0.123456789", want: "123456789/1000000000"},
		{name: "too many integer digits", input: "100000000000000000000000000000", wantErr: true},
		{name: "too many decimals", input: "0.1234567891", wantErr: true},
		{name: "hex", input: "0x1f", wantErr: true},
		{name: "octal prefix", input: "0o7", wantErr: true},
		{name: "exponent", input: "1e3", wantErr: true},
		{name: "ratio", input: "1/2", wantErr: true},
		{name: "trailing dot", input: "5.", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input, NumericScale)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDecimal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.RatString())
		})
	}
}
