// Package smaps parses the per-process memory mapping information exposed by
// the Linux /proc filesystem in /proc/[pid]/maps and /proc/[pid]/smaps.
//
// The format is a sequence of mapping header lines, each optionally followed
// by a block of per-mapping usage detail lines. ReadAll and ReadFilter parse
// a whole snapshot in one call; NewParser exposes the same state machine one
// step at a time so callers can decide per mapping whether its detail block
// is worth decoding. See `man 5 proc` for the format itself.
package smaps
