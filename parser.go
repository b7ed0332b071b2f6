package smaps

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// A LineSource produces lines one at a time with one line of lookahead. Both
// methods return io.EOF once the underlying stream is exhausted. The parser
// assumes exclusive ownership of the source for the duration of a parse.
type LineSource interface {
	// Peek returns the next line without consuming it.
	Peek() (string, error)
	// Next consumes and returns the next line.
	Next() (string, error)
}

// NewLineSource wraps r in a buffered LineSource.
func NewLineSource(r io.Reader) LineSource {
	return &lineScanner{s: bufio.NewScanner(r)}
}

type lineScanner struct {
	s      *bufio.Scanner
	peeked bool
	line   string
	err    error
}

func (l *lineScanner) Peek() (string, error) {
	if !l.peeked {
		l.advance()
	}
	return l.line, l.err
}

func (l *lineScanner) Next() (string, error) {
	if !l.peeked {
		l.advance()
	}
	l.peeked = false
	return l.line, l.err
}

func (l *lineScanner) advance() {
	l.peeked = true
	if l.s.Scan() {
		l.line, l.err = l.s.Text(), nil
		return
	}
	l.line = ""
	if l.err = l.s.Err(); l.err == nil {
		l.err = io.EOF
	}
}

// The stream has no explicit block delimiters; header lines are told apart
// from detail lines by containing a '-' (from the START-END range). This is
// inherited from the format and assumes no detail key or value ever contains
// a dash, which holds for everything the kernel currently emits.
func isHeaderLine(line string) bool {
	return strings.ContainsRune(line, '-')
}

// A HeaderParser is a parser positioned before a mapping header line. A zero
// HeaderParser is not usable; obtain one from NewParser.
type HeaderParser struct {
	src LineSource
}

// A UsageParser is a parser positioned at the start of a mapping's detail
// block, which may be empty. It is obtained from HeaderParser.Next; the
// caller must either Parse or Skip the block to get back a HeaderParser,
// which keeps the strict header/usage alternation an interface-level
// contract.
type UsageParser struct {
	src LineSource
}

// NewParser returns an incremental parser reading from src. Callers that
// just want the whole snapshot should use Parse, ReadAll, or ReadFilter
// instead; the incremental interface exists so a caller can decide per
// mapping whether to decode or skip its detail block.
func NewParser(src LineSource) *HeaderParser {
	return &HeaderParser{src: src}
}

// Next consumes one header line and returns the decoded Mapping along with a
// UsageParser for the detail block that follows it. At the end of the stream
// it returns io.EOF. A malformed header consumes exactly that one line.
func (p *HeaderParser) Next() (*UsageParser, Mapping, error) {
	line, err := p.src.Next()
	if err != nil {
		return nil, Mapping{}, err
	}
	m, err := ParseMapping(line)
	if err != nil {
		return nil, Mapping{}, err
	}
	return &UsageParser{src: p.src}, m, nil
}

// Parse decodes the detail block and returns the accumulated Usage along
// with the parser for the next header. A block with no detail lines yields
// the zero Usage. If a detail line fails to decode, Parse skips the rest of
// the block before returning the error, so the returned HeaderParser is
// still synchronized and the caller may continue with the next mapping.
func (p *UsageParser) Parse() (*HeaderParser, Usage, error) {
	u, err := parseUsage(p.src)
	if err != nil && (errors.Is(err, ErrSyntax) || errors.Is(err, ErrUnknownField)) {
		if skipErr := skipUsage(p.src); skipErr != nil {
			return nil, Usage{}, skipErr
		}
		return &HeaderParser{src: p.src}, Usage{}, err
	}
	if err != nil {
		return nil, Usage{}, err
	}
	return &HeaderParser{src: p.src}, u, nil
}

// Skip advances past the detail block without decoding any of it. Only the
// header-line discriminator is consulted, so garbage inside the block cannot
// make Skip fail; the only possible error is an I/O failure from the source.
func (p *UsageParser) Skip() (*HeaderParser, error) {
	if err := skipUsage(p.src); err != nil {
		return nil, err
	}
	return &HeaderParser{src: p.src}, nil
}

func parseUsage(src LineSource) (Usage, error) {
	var u Usage
	for {
		line, err := src.Peek()
		if err == io.EOF {
			return u, nil
		}
		if err != nil {
			return u, err
		}
		if isHeaderLine(line) {
			return u, nil
		}
		if _, err := src.Next(); err != nil {
			return u, err
		}
		if strings.HasPrefix(line, "VmFlags") {
			rest := strings.TrimLeft(strings.TrimPrefix(line, "VmFlags:"), " \t")
			flags, err := ParseVMFlags(rest)
			if err != nil {
				return u, err
			}
			u.VMFlags = flags
			continue
		}
		key, value, err := parseSizedValue(line)
		if err != nil {
			return u, err
		}
		if err := u.setField(key, value); err != nil {
			return u, err
		}
	}
}

func skipUsage(src LineSource) error {
	for {
		line, err := src.Peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if isHeaderLine(line) {
			return nil
		}
		if _, err := src.Next(); err != nil {
			return err
		}
	}
}

// A Region pairs one mapping with its decoded usage details. Mappings from a
// plain maps file, or from a kernel that emits no detail lines, carry the
// zero Usage.
type Region struct {
	Mapping Mapping
	Usage   Usage
}

// Parse reads mappings and usage details from src until the end of the
// stream, preserving source order. It returns either the complete snapshot
// or the first error encountered, with no partial results.
func Parse(src LineSource) ([]Region, error) {
	return ParseFilter(src, nil)
}

// ParseFilter is Parse with a predicate: the detail block of any mapping for
// which keep returns false is skipped without decoding, so malformed detail
// lines in unwanted blocks cannot fail the parse. A nil keep keeps
// everything.
func ParseFilter(src LineSource, keep func(*Mapping) bool) ([]Region, error) {
	var out []Region
	hp := NewParser(src)
	for {
		up, m, err := hp.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if keep != nil && !keep(&m) {
			if hp, err = up.Skip(); err != nil {
				return nil, err
			}
			continue
		}
		var u Usage
		if hp, u, err = up.Parse(); err != nil {
			return nil, err
		}
		out = append(out, Region{Mapping: m, Usage: u})
	}
}

// ReadAll parses the maps or smaps file at path.
func ReadAll(path string) ([]Region, error) {
	return ReadFilter(path, nil)
}

// ReadFilter parses the file at path, skipping the detail blocks of mappings
// rejected by keep. See ParseFilter.
func ReadFilter(path string, keep func(*Mapping) bool) ([]Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseFilter(NewLineSource(f), keep)
}

// ReadPid parses /proc/<pid>/smaps.
func ReadPid(pid int) ([]Region, error) {
	return ReadAll(fmt.Sprintf("/proc/%d/smaps", pid))
}
