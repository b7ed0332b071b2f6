package smaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermissions(t *testing.T) {
	tests := []struct {
		in   string
		want Permissions
	}{
		{"---p", PermPrivate},
		{"---s", PermShared},
		{"r--p", PermRead | PermPrivate},
		{"rw-p", PermRead | PermWrite | PermPrivate},
		{"r-xp", PermRead | PermExec | PermPrivate},
		{"rwxs", PermRead | PermWrite | PermExec | PermShared},
		{"-w-p", PermWrite | PermPrivate},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePermissions(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestParsePermissionsInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"rwx",   // missing category
		"rwxp ", // too long
		"rwxX",  // bad category char
		"----",  // category is mandatory, even with no access bits
		"Rwxp",  // wrong case
		"xr-p",  // right chars, wrong positions
		"rw-?",
		"r  p",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePermissions(in)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestPermissionsString(t *testing.T) {
	for _, s := range []string{"---p", "r-xp", "rw-s", "rwxp"} {
		p, err := ParsePermissions(s)
		require.NoError(t, err)
		assert.Equal(t, s, p.String())
	}
	// The zero value renders with no category bit; the parser never produces
	// it, but String must not invent one.
	assert.Equal(t, "----", Permissions(0).String())
}
