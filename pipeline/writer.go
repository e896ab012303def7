package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriterLoop drains strings from ch and appends them to w until ch is
// closed. It backs the primary sink; the debug sink uses
// DebugWriterLoop, which has the same loop shape but writes each
// record to a new file.
func WriterLoop(w io.Writer, ch <-chan string) error {
	bw := bufio.NewWriter(w)
	for s := range ch {
		if _, err := bw.WriteString(s); err != nil {
			return fmt.Errorf("pipeline: WriterLoop: %w", err)
		}
	}
	return bw.Flush()
}

// DebugWriterLoop drains strings from ch, writing each one to a fresh
// file named prefix+N+".tsv", where N is the count of records written
// so far by this loop. It is only instantiated when a debug prefix is
// configured.
func DebugWriterLoop(prefix string, ch <-chan string) error {
	n := 0
	for s := range ch {
		name := fmt.Sprintf("%s%d.tsv", prefix, n)
		if err := os.WriteFile(name, []byte(s), 0o644); err != nil {
			return fmt.Errorf("pipeline: DebugWriterLoop: %w", err)
		}
		n++
	}
	return nil
}
