package smaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapping(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Mapping
	}{
		{
			"File",
			"00400000-00452000 r-xp 00000000 08:02 173521 /usr/bin/cat",
			Mapping{
				Start:  0x00400000,
				End:    0x00452000,
				Perms:  PermRead | PermExec | PermPrivate,
				Offset: 0,
				Dev:    Device{Major: 8, Minor: 2},
				Inode:  173521,
				Path:   "/usr/bin/cat",
			},
		},
		{
			"Anonymous",
			"7f8a6e9b6000-7f8a6e9b9000 rw-p 00000000 00:00 0",
			Mapping{
				Start: 0x7f8a6e9b6000,
				End:   0x7f8a6e9b9000,
				Perms: PermRead | PermWrite | PermPrivate,
			},
		},
		{
			"PseudoPath",
			"01f0c000-01f2d000 rw-p 00000000 00:00 0      [heap]",
			Mapping{
				Start: 0x01f0c000,
				End:   0x01f2d000,
				Perms: PermRead | PermWrite | PermPrivate,
				Path:  "[heap]",
			},
		},
		{
			"PathWithSpaces",
			"7f1000000000-7f1000001000 r--s 00001000 fd:01 42 /tmp/with space (deleted)",
			Mapping{
				Start:  0x7f1000000000,
				End:    0x7f1000001000,
				Perms:  PermRead | PermShared,
				Offset: 0x1000,
				Dev:    Device{Major: 0xfd, Minor: 1},
				Inode:  42,
				Path:   "/tmp/with space (deleted)",
			},
		},
		{
			"NonzeroOffset",
			"ffff0000-ffff1000 --xp 000a2000 1f:0b 9",
			Mapping{
				Start:  0xffff0000,
				End:    0xffff1000,
				Perms:  PermExec | PermPrivate,
				Offset: 0xa2000,
				Dev:    Device{Major: 0x1f, Minor: 0xb},
				Inode:  9,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMapping(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestParseMappingInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Empty", ""},
		{"NoRange", "00400000 r-xp 00000000 08:02 173521"},
		{"BadHexStart", "00g00000-00452000 r-xp 00000000 08:02 173521"},
		{"BadHexEnd", "00400000-xyz r-xp 00000000 08:02 173521"},
		{"BadPerms", "00400000-00452000 rwxX 00000000 08:02 173521"},
		{"BadOffset", "00400000-00452000 r-xp 0x0000 08:02 173521"},
		{"NoDeviceColon", "00400000-00452000 r-xp 00000000 0802 173521"},
		{"BadDevice", "00400000-00452000 r-xp 00000000 08:zz 173521"},
		{"MissingInode", "00400000-00452000 r-xp 00000000 08:02"},
		{"HexInode", "00400000-00452000 r-xp 00000000 08:02 ff"},
		{"NegativeInode", "00400000-00452000 r-xp 00000000 08:02 -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMapping(tt.in)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestMappingString(t *testing.T) {
	m, err := ParseMapping("00400000-00452000 r-xp 00000000 08:02 173521 /usr/bin/cat")
	require.NoError(t, err)
	assert.Equal(t, "400000-452000 r-xp 00000000 08:02 173521 /usr/bin/cat", m.String())

	m, err = ParseMapping("7f8a6e9b6000-7f8a6e9b9000 rw-p 00000000 00:00 0")
	require.NoError(t, err)
	assert.Equal(t, "7f8a6e9b6000-7f8a6e9b9000 rw-p 00000000 00:00 0", m.String())
}
