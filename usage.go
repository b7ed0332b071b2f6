package smaps

import (
	"fmt"
	"strconv"
	"strings"
)

// Usage holds the detail statistics reported for one mapping in
// /proc/[pid]/smaps. All sizes are in bytes, already scaled from the unit the
// kernel printed. The zero value is what a mapping with no detail lines
// decodes to: every count zero, no protection key, empty flag set.
type Usage struct {
	Size           uint64
	KernelPageSize uint64
	MMUPageSize    uint64
	Rss            uint64
	Pss            uint64
	PssDirty       uint64
	SharedClean    uint64
	SharedDirty    uint64
	PrivateClean   uint64
	PrivateDirty   uint64
	Referenced     uint64
	Anonymous      uint64
	KSM            uint64
	LazyFree       uint64
	AnonHugePages  uint64
	ShmemHugePages uint64
	ShmemPmdMapped uint64
	FilePmdMapped  uint64
	SharedHugetlb  uint64
	PrivateHugetlb uint64
	Swap           uint64
	SwapPss        uint64
	Locked         uint64

	THPEligible bool
	// ProtectionKey is nil unless the kernel reports one
	// (CONFIG_X86_INTEL_MEMORY_PROTECTION_KEYS).
	ProtectionKey *uint64

	VMFlags VMFlags
}

// parseSizedValue decodes one "KEY: N [UNIT]" detail line. The unit scales N
// into bytes: kB, mB, gB, and tB shift by 10, 20, 30, and 40 bits (these are
// binary units despite the kernel's spelling). A missing unit leaves N as is.
// More than three fields, a non-numeric N, or an unknown unit all fail.
func parseSizedValue(line string) (key string, value uint64, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || len(fields) > 3 {
		return "", 0, fmt.Errorf("%w: detail line %q", ErrSyntax, line)
	}
	key = strings.TrimRight(fields[0], ":")
	value, err = strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: value %q", ErrSyntax, fields[1])
	}
	if len(fields) == 3 {
		var shift uint
		switch fields[2] {
		case "kB":
			shift = 10
		case "mB":
			shift = 20
		case "gB":
			shift = 30
		case "tB":
			shift = 40
		default:
			return "", 0, fmt.Errorf("%w: unit %q", ErrUnknownField, fields[2])
		}
		value <<= shift
	}
	return key, value, nil
}

// setField stores a decoded detail value into the field named by key. A key
// outside the documented set means the kernel format has drifted past what
// this package understands.
func (u *Usage) setField(key string, value uint64) error {
	switch key {
	case "Size":
		u.Size = value
	case "KernelPageSize":
		u.KernelPageSize = value
	case "MMUPageSize":
		u.MMUPageSize = value
	case "Rss":
		u.Rss = value
	case "Pss":
		u.Pss = value
	case "Pss_Dirty":
		u.PssDirty = value
	case "Shared_Clean":
		u.SharedClean = value
	case "Shared_Dirty":
		u.SharedDirty = value
	case "Private_Clean":
		u.PrivateClean = value
	case "Private_Dirty":
		u.PrivateDirty = value
	case "Referenced":
		u.Referenced = value
	case "Anonymous":
		u.Anonymous = value
	case "KSM":
		u.KSM = value
	case "LazyFree":
		u.LazyFree = value
	case "AnonHugePages":
		u.AnonHugePages = value
	case "ShmemHugePages":
		u.ShmemHugePages = value
	case "ShmemPmdMapped":
		u.ShmemPmdMapped = value
	case "FilePmdMapped":
		u.FilePmdMapped = value
	case "Shared_Hugetlb":
		u.SharedHugetlb = value
	case "Private_Hugetlb":
		u.PrivateHugetlb = value
	case "Swap":
		u.Swap = value
	case "SwapPss":
		u.SwapPss = value
	case "Locked":
		u.Locked = value
	case "THPeligible":
		u.THPEligible = value != 0
	case "ProtectionKey":
		u.ProtectionKey = &value
	default:
		return fmt.Errorf("%w: key %q", ErrUnknownField, key)
	}
	return nil
}
