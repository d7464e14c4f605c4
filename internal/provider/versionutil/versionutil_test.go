package versionutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"3.1.412", "v3.1.412"},
		{"v3.1", "v3.1.0"},
		{" 6.0.100 ", "v6.0.100"},
		{"6.0.100-preview.7.21379.14", "v6.0.100-preview.7.21379.14"},
		{"", ""},
		{"latest", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Canonical(tt.in))
		})
	}
}

func TestMatchesChannel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		channel string
		want    bool
	}{
		{"3.1.412", "3.1", true},
		{"3.1.100", "3.1", true},
		{"3.10.100", "3.1", false},
		{"5.0.400", "3.1", false},
		{"6.0.100", "6", true},
		{"7.0.100", "6", false},
		{"garbage", "3.1", false},
		{"3.1.412", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.version+"~"+tt.channel, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MatchesChannel(tt.version, tt.channel))
		})
	}
}

func TestFirstField(t *testing.T) {
	t.Parallel()

	out := "3.1.412 [C:\\Program Files\\dotnet\\sdk]\n\n5.0.400 [C:\\Program Files\\dotnet\\sdk]\n"
	assert.Equal(t, []string{"3.1.412", "5.0.400"}, FirstField(out))
	assert.Empty(t, FirstField(""))
}

func TestLatest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5.0.400", Latest([]string{"3.1.412", "5.0.400", "oops", "3.1.100"}))
	assert.Equal(t, "", Latest([]string{"oops"}))
}

func TestAtLeast(t *testing.T) {
	t.Parallel()

	assert.True(t, AtLeast("7.0.100", "7.0"))
	assert.True(t, AtLeast("8.0.204\n", "7"))
	assert.False(t, AtLeast("6.0.416", "7.0"))
	assert.False(t, AtLeast("3.1.412", "5"))
	assert.False(t, AtLeast("garbage", "1.0"))
}
