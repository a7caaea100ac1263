package gemini

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain text", input: "Buy milk", want: "Buy milk"},
		{name: "trailing newline", input: "Buy milk\n", want: "Buy milk"},
		{name: "surrounding whitespace", input: "  Buy milk  ", want: "Buy milk"},
		{name: "quoted", input: `"Buy milk"`, want: "Buy milk"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "  \n  ", wantErr: true},
		{name: "multiple lines", input: "Buy milk\nand eggs", wantErr: true},
		{name: "carriage return", input: "Buy milk\rand eggs", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseSingleLine(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "plain date",
			input: "2026-09-14",
			want:  time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "trailing newline",
			input: "2026-09-14\n",
			want:  time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "quoted",
			input: `"2026-09-14"`,
			want:  time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		},
		{name: "prose around the date", input: "The deadline is 2026-09-14.", wantErr: true},
		{name: "wrong format", input: "09/14/2026", wantErr: true},
		{name: "impossible date", input: "2026-02-30", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseDate(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
		})
	}
}
