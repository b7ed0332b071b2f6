package smaps

import (
	"fmt"
	"strings"
)

// VMFlags is the set of per-mapping kernel flags reported on the VmFlags line
// of an smaps entry, one bit per documented two-letter mnemonic.
type VMFlags uint32

const (
	VMReadable     VMFlags = 1 << iota // rd
	VMWritable                         // wr
	VMExecutable                       // ex
	VMShared                           // sh
	VMMayRead                          // mr
	VMMayWrite                         // mw
	VMMayExec                          // me
	VMMayShare                         // ms
	VMGrowsDown                        // gd: stack segment grows down
	VMPFNMap                           // pf: pure PFN range
	VMDenyWrite                        // dw: disabled write to the mapped file
	VMLocked                           // lo: pages locked in memory
	VMIO                               // io: memory mapped I/O area
	VMSeqRead                          // sr: sequential read advise provided
	VMRandRead                         // rr: random read advise provided
	VMDontCopy                         // dc: do not copy area on fork
	VMDontExpand                       // de: do not expand area on remapping
	VMAccount                          // ac: area is accountable
	VMNoReserve                        // nr: swap space not reserved for the area
	VMHugeTLB                          // ht: area uses huge tlb pages
	VMSyncFault                        // sf: synchronous page faults (Linux 4.15)
	VMNonLinear                        // nl: non-linear mapping (removed in Linux 4.0)
	VMArchSpecific                     // ar
	VMWipeOnFork                       // wf: wipe on fork (Linux 4.14)
	VMDontDump                         // dd: excluded from core dumps
	VMSoftDirty                        // sd: soft-dirty flag (Linux 3.13)
	VMMixedMap                         // mm
	VMHugePage                         // hg: huge page advise flag
	VMNoHugePage                       // nh: no-huge page advise flag
	VMMergeable                        // mg: mergeable advise flag
	VMUffdMissing                      // um: userfaultfd missing pages tracking
	VMUffdWP                           // uw: userfaultfd wprotect pages tracking
)

var vmFlagNames = map[string]VMFlags{
	"rd": VMReadable,
	"wr": VMWritable,
	"ex": VMExecutable,
	"sh": VMShared,
	"mr": VMMayRead,
	"mw": VMMayWrite,
	"me": VMMayExec,
	"ms": VMMayShare,
	"gd": VMGrowsDown,
	"pf": VMPFNMap,
	"dw": VMDenyWrite,
	"lo": VMLocked,
	"io": VMIO,
	"sr": VMSeqRead,
	"rr": VMRandRead,
	"dc": VMDontCopy,
	"de": VMDontExpand,
	"ac": VMAccount,
	"nr": VMNoReserve,
	"ht": VMHugeTLB,
	"sf": VMSyncFault,
	"nl": VMNonLinear,
	"ar": VMArchSpecific,
	"wf": VMWipeOnFork,
	"dd": VMDontDump,
	"sd": VMSoftDirty,
	"mm": VMMixedMap,
	"hg": VMHugePage,
	"nh": VMNoHugePage,
	"mg": VMMergeable,
	"um": VMUffdMissing,
	"uw": VMUffdWP,
}

// ParseVMFlags decodes a whitespace-separated list of two-letter mnemonics
// into their union. An empty list yields the empty set; a mnemonic outside
// the documented table is an error (the kernel never emits others).
func ParseVMFlags(s string) (VMFlags, error) {
	var flags VMFlags
	for _, tok := range strings.Fields(s) {
		f, ok := vmFlagNames[tok]
		if !ok {
			return 0, fmt.Errorf("%w: VM flag %q", ErrUnknownField, tok)
		}
		flags |= f
	}
	return flags, nil
}

// Has reports whether every bit of mask is set in f.
func (f VMFlags) Has(mask VMFlags) bool { return f&mask == mask }
