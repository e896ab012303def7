package mapping

import (
	"bufio"
	"fmt"
	"os"

	"github.com/exascience/pargo/pipeline"
)

// PrescanTotalAlignedBP performs the one-pass pre-scan required to
// size the progress meter's total before the pipeline starts: it sums
// query_end - query_start over every record in the mapping file.
//
// The scan is parallelized across line batches with
// github.com/exascience/pargo/pipeline, following the same
// source/receive/sink shape this family of programs uses for batched
// SAM record processing: the whole file is read into memory as lines,
// fed through a Source, parsed and summed per batch by a receiver
// running on workers parameters, and the partial sums collected back
// into a slice that is added up sequentially.
func PrescanTotalAlignedBP(path string, cfg ParseConfig, workers int) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("mapping: prescan: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("mapping: prescan: %w", err)
	}
	if len(lines) == 0 {
		return 0, nil
	}

	var p pipeline.Pipeline
	p.Source(lines)
	p.SetVariableBatchSize(256, 4096)

	p.Add(pipeline.LimitedPar(workers, pipeline.Receive(func(_ int, data interface{}) interface{} {
		batch := data.([]string)
		var sum uint64
		for _, line := range batch {
			rec, err := Parse(line, cfg)
			if err != nil {
				p.SetErr(err)
				return []uint64{0}
			}
			sum += uint64(rec.QuerySpan())
		}
		return []uint64{sum}
	})))

	var partials []uint64
	p.Add(pipeline.StrictOrd(pipeline.Slice(&partials)))
	p.Run()
	if err := p.Err(); err != nil {
		return 0, err
	}

	var total uint64
	for _, s := range partials {
		total += s
	}
	return total, nil
}
