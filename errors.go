package smaps

import "errors"

// ErrSyntax indicates a line that does not match the documented maps/smaps
// grammar (bad hex, wrong field count, malformed permission quad, and so on).
var ErrSyntax = errors.New("smaps: malformed line")

// ErrUnknownField indicates format drift: a detail key, size unit, or VM flag
// mnemonic outside the vocabulary this package understands. The kernel only
// emits the documented set, so hitting this means the format has changed and
// decoded results can no longer be trusted.
var ErrUnknownField = errors.New("smaps: unrecognized field")
