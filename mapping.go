package smaps

import (
	"fmt"
	"strconv"
	"strings"
)

// Device identifies the block device backing a mapping, as the hex-encoded
// MAJOR:MINOR field of a header line.
type Device struct {
	Major uint32
	Minor uint32
}

// A Mapping is one virtual memory region of a process, decoded from a single
// header line of /proc/[pid]/maps or /proc/[pid]/smaps. Start < End for any
// well-formed kernel output, but the parser does not check it. Path is the
// backing file or pseudo-path such as "[heap]"; it is "" for anonymous
// mappings with no name.
type Mapping struct {
	Start  uint64
	End    uint64
	Perms  Permissions
	Offset uint64
	Dev    Device
	Inode  uint64
	Path   string
}

// ParseMapping decodes one header line:
//
//	START-END PERMS OFFSET MAJ:MIN INODE [PATH]
//
// Addresses and OFFSET are unprefixed hex, INODE is decimal. Everything after
// INODE, with leading whitespace removed, is kept verbatim as Path, so paths
// containing spaces survive intact. Any missing or undecodable field fails
// the whole line.
func ParseMapping(line string) (Mapping, error) {
	var m Mapping

	field, rest := nextField(line)
	startTok, endTok, ok := strings.Cut(field, "-")
	if !ok {
		return m, fmt.Errorf("%w: address range %q", ErrSyntax, field)
	}
	var err error
	if m.Start, err = parseHex(startTok); err != nil {
		return m, err
	}
	if m.End, err = parseHex(endTok); err != nil {
		return m, err
	}

	field, rest = nextField(rest)
	if m.Perms, err = ParsePermissions(field); err != nil {
		return m, err
	}

	field, rest = nextField(rest)
	if m.Offset, err = parseHex(field); err != nil {
		return m, err
	}

	field, rest = nextField(rest)
	if m.Dev, err = parseDevice(field); err != nil {
		return m, err
	}

	field, rest = nextField(rest)
	if field == "" {
		return m, fmt.Errorf("%w: missing inode in %q", ErrSyntax, line)
	}
	if m.Inode, err = strconv.ParseUint(field, 10, 64); err != nil {
		return m, fmt.Errorf("%w: inode %q", ErrSyntax, field)
	}

	m.Path = strings.TrimLeft(rest, " \t")
	return m, nil
}

func parseDevice(s string) (Device, error) {
	majTok, minTok, ok := strings.Cut(s, ":")
	if !ok {
		return Device{}, fmt.Errorf("%w: device %q", ErrSyntax, s)
	}
	maj, err := strconv.ParseUint(majTok, 16, 32)
	if err != nil {
		return Device{}, fmt.Errorf("%w: device major %q", ErrSyntax, majTok)
	}
	min, err := strconv.ParseUint(minTok, 16, 32)
	if err != nil {
		return Device{}, fmt.Errorf("%w: device minor %q", ErrSyntax, minTok)
	}
	return Device{Major: uint32(maj), Minor: uint32(min)}, nil
}

func parseHex(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: hex value %q", ErrSyntax, s)
	}
	return v, nil
}

// nextField trims leading whitespace from s and splits off its first
// whitespace-delimited field, returning the field and the unconsumed
// remainder (which keeps its own leading whitespace).
func nextField(s string) (field, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func (m Mapping) String() string {
	s := fmt.Sprintf("%x-%x %s %08x %02x:%02x %d",
		m.Start, m.End, m.Perms, m.Offset, m.Dev.Major, m.Dev.Minor, m.Inode)
	if m.Path != "" {
		s += " " + m.Path
	}
	return s
}
