// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Pooled 64 KiB writers shared by JSONL outputs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Write emits one JSON document per line for each item, converted to its
// wire form by wire. HTML escaping is off so ids such as "A&B" stay as-is.
func Write[T any](out io.Writer, items []T, wire func(T) any) error {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(out)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, v := range items {
		if err := enc.Encode(wire(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
