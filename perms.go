package smaps

import "fmt"

// Permissions describes the access bits of one mapping, as shown in the
// four-character field of a header line (e.g. "r-xp"). Exactly one of
// PermShared and PermPrivate is set in any value produced by the parser.
type Permissions uint8

const (
	PermExec Permissions = 1 << iota
	PermWrite
	PermRead
	PermShared
	PermPrivate
)

// ParsePermissions decodes a four-character permission field. Each position
// is fixed: read, write, execute (each either its letter or '-'), then 's'
// or 'p'. Any other character at any position is an error.
func ParsePermissions(s string) (Permissions, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: permissions %q", ErrSyntax, s)
	}
	var p Permissions
	switch s[0] {
	case 'r':
		p |= PermRead
	case '-':
	default:
		return 0, fmt.Errorf("%w: permissions %q", ErrSyntax, s)
	}
	switch s[1] {
	case 'w':
		p |= PermWrite
	case '-':
	default:
		return 0, fmt.Errorf("%w: permissions %q", ErrSyntax, s)
	}
	switch s[2] {
	case 'x':
		p |= PermExec
	case '-':
	default:
		return 0, fmt.Errorf("%w: permissions %q", ErrSyntax, s)
	}
	switch s[3] {
	case 's':
		p |= PermShared
	case 'p':
		p |= PermPrivate
	default:
		return 0, fmt.Errorf("%w: permissions %q", ErrSyntax, s)
	}
	return p, nil
}

// String renders p in the same four-character form the kernel uses.
func (p Permissions) String() string {
	b := []byte("----")
	if p&PermRead != 0 {
		b[0] = 'r'
	}
	if p&PermWrite != 0 {
		b[1] = 'w'
	}
	if p&PermExec != 0 {
		b[2] = 'x'
	}
	if p&PermShared != 0 {
		b[3] = 's'
	}
	if p&PermPrivate != 0 {
		b[3] = 'p'
	}
	return string(b)
}
