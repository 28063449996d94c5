// internal/fasta/parse.go
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseError reports a FASTA file that cannot be turned into a Store.
// Line is 1-based; 0 means the error is not tied to a line.
type ParseError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("fasta ")
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// HeaderID derives a record id from a header line (with or without the
// leading '>'): the text before the first whitespace, then before the
// first '|'.
//
//	">EGX35_RS00135.1 response regulator"  → "EGX35_RS00135.1"
//	">orange1 | 1g019260m"                 → "orange1"
//	">B|desc2"                             → "B"
func HeaderID(header string) string {
	h := strings.TrimPrefix(strings.TrimSpace(header), ">")
	if i := strings.IndexFunc(h, isSpace); i >= 0 {
		h = h[:i]
	}
	if i := strings.IndexByte(h, '|'); i >= 0 {
		h = h[:i]
	}
	return h
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Parse reads a FASTA file ("-" for stdin, gzip detected automatically).
func Parse(path string) (*Store, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "cannot open", Err: err}
	}
	defer rc.Close()
	return ParseReader(path, rc)
}

// ParseReader parses FASTA text from r. name is used for error messages
// and Store.Name.
func ParseReader(name string, r io.Reader) (*Store, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	st := newStore(name)
	var (
		id         string
		headerLine int
		seq        strings.Builder
		lineNo     int
	)

	flush := func() error {
		if id == "" {
			return nil
		}
		if seq.Len() == 0 {
			return &ParseError{Path: name, Line: headerLine, Msg: fmt.Sprintf("record %q has no sequence", id)}
		}
		st.put(id, seq.String())
		seq.Reset()
		return nil
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			id = HeaderID(line)
			headerLine = lineNo
			if id == "" {
				return nil, &ParseError{Path: name, Line: lineNo, Msg: "header has no id"}
			}
			continue
		}
		if id == "" {
			return nil, &ParseError{Path: name, Line: lineNo, Msg: "sequence line before first header"}
		}
		seq.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Path: name, Line: lineNo, Msg: "read failed", Err: err}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if st.Len() == 0 {
		return nil, &ParseError{Path: name, Msg: "no records"}
	}
	return st, nil
}
