// internal/fasta/open.go
package fasta

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
)

// source is the decompressed view of an input plus whatever must be
// closed when parsing ends.
type source struct {
	io.Reader
	closers []io.Closer
}

func (s *source) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openReader opens path ("-" for stdin) and unwraps gzip when the stream
// starts with the gzip magic bytes 1F 8B. Sniffing with Peek works on
// pipes too, so gzipped stdin is accepted.
func openReader(path string) (io.ReadCloser, error) {
	var f *os.File
	src := &source{}
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(path); err != nil {
			return nil, err
		}
		src.closers = append(src.closers, f)
	}

	br := bufio.NewReaderSize(f, 64*1024)
	if magic, _ := br.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = src.Close()
			return nil, err
		}
		src.Reader = gr
		src.closers = append([]io.Closer{gr}, src.closers...)
		return src, nil
	}
	src.Reader = br
	return src, nil
}
