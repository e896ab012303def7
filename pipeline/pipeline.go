package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pjotrp/wfmash/config"
	"github.com/pjotrp/wfmash/internal"
	"github.com/pjotrp/wfmash/mapping"
	"github.com/pjotrp/wfmash/wavefront"
)

// queryFastaPaths resolves -q to the list of FASTA files the Reader
// should iterate in order: a plain file is returned as a single-entry
// slice, a directory is expanded to every entry it contains, sorted
// for reproducible rank_mapping assignment across runs.
func queryFastaPaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: resolving query FASTA %q: %w", path, err)
	}
	if !info.IsDir() {
		full, err := internal.FullPathname(path)
		if err != nil {
			return nil, fmt.Errorf("pipeline: resolving query FASTA %q: %w", path, err)
		}
		return []string{full}, nil
	}
	names, err := internal.Directory(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: resolving query FASTA %q: %w", path, err)
	}
	sort.Strings(names)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(path, name)
	}
	return paths, nil
}

// queueCapacity bounds the task and output channels. spec.md §5 calls
// for "~128K slots"; a practical default for the thread counts this
// reimplementation actually targets is far smaller, so the
// reimplementation scales it off the configured thread count instead
// of hard-coding the original's number.
func queueCapacity(threads int) int {
	capacity := threads * 256
	if capacity < 4096 {
		capacity = 4096
	}
	return capacity
}

func toParams(cfg config.Config) wavefront.Params {
	return wavefront.Params{
		Mismatch:          cfg.Mismatch,
		GapOpen:           cfg.GapOpen,
		GapExtend:         cfg.GapExtend,
		MashDistance:      cfg.MashDistance,
		WFMinLength:       cfg.WFMinLength,
		DistanceThreshold: cfg.DistanceThreshold,
		SegmentLength:     cfg.SegmentLength,
		BlockLength:       cfg.BlockLength,
		ChainGap:          cfg.ChainGap,
		MaxPatchingScore:  cfg.MaxPatchingScore,
		ErodeK:            cfg.ErodeK,
		SAMFormat:         cfg.SAMFormat,
	}
}

// Run drives one complete pipeline execution: pre-scan, Reader,
// worker pool, and primary/debug writers, returning once every stage
// has completed and every queue has drained.
func Run(cfg config.Config) (*Progress, error) {
	parseCfg := mapping.ParseConfig{DefaultIdentity: cfg.MashmapDefaultIdentity}

	queryFastas, err := queryFastaPaths(cfg.QueryFasta)
	if err != nil {
		return nil, fmt.Errorf("pipeline: Run: %w", err)
	}

	total, err := mapping.PrescanTotalAlignedBP(cfg.MappingFile, parseCfg, cfg.Threads)
	if err != nil {
		return nil, fmt.Errorf("pipeline: Run: %w", err)
	}
	progress := NewProgress(total)

	tasks := make(chan Task, queueCapacity(cfg.Threads))
	primaryOut := make(chan string, queueCapacity(cfg.Threads))
	var debugOut chan string
	if cfg.DebugEnabled() {
		debugOut = make(chan string, queueCapacity(cfg.Threads))
	}

	readerDone := &atomic.Bool{}
	reader := NewReader(tasks, readerDone, cfg.SplitQueries, cfg.SAMFormat)

	var writerWG sync.WaitGroup
	var writerErr error

	out, err := openOutput(cfg.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("pipeline: Run: %w", err)
	}
	writerWG.Add(1)
	go func() {
		defer writerWG.Done()
		if err := WriterLoop(out, primaryOut); err != nil {
			writerErr = err
		}
	}()

	var debugWG sync.WaitGroup
	var debugErr error
	if debugOut != nil {
		debugWG.Add(1)
		go func() {
			defer debugWG.Done()
			if err := DebugWriterLoop(cfg.TSVOutputPrefix, debugOut); err != nil {
				debugErr = err
			}
		}()
	}

	aligner := wavefront.NewPatchingAligner()
	params := toParams(cfg)

	workers := make([]*Worker, cfg.Threads)
	actives := make([]*atomic.Bool, cfg.Threads)
	for i := 0; i < cfg.Threads; i++ {
		actives[i] = &atomic.Bool{}
		w, err := NewWorker(i, cfg.TargetFasta, aligner, params, int64(cfg.WflignMaxLenMinor), cfg.DebugEnabled(), actives[i], progress)
		if err != nil {
			for _, started := range workers[:i] {
				if started != nil {
					_ = started.Close()
				}
			}
			close(primaryOut)
			if debugOut != nil {
				close(debugOut)
			}
			writerWG.Wait()
			debugWG.Wait()
			closeFileIfNeeded(out, cfg.OutputFile)
			return nil, fmt.Errorf("pipeline: Run: %w", err)
		}
		workers[i] = w
	}

	var workerWG sync.WaitGroup
	for _, w := range workers {
		workerWG.Add(1)
		go func(w *Worker) {
			defer workerWG.Done()
			w.Run(tasks, primaryOut, debugOut)
		}(w)
	}

	readerErr := reader.Run(cfg.MappingFile, queryFastas, parseCfg)
	close(tasks)

	workerWG.Wait()
	for _, w := range workers {
		_ = w.Close()
	}
	close(primaryOut)
	if debugOut != nil {
		close(debugOut)
	}

	writerWG.Wait()
	debugWG.Wait()
	closeFileIfNeeded(out, cfg.OutputFile)

	if readerErr != nil {
		return progress, readerErr
	}
	if writerErr != nil {
		return progress, writerErr
	}
	if debugErr != nil {
		return progress, debugErr
	}
	return progress, nil
}

func openOutput(path string) (*os.File, error) {
	if path == "-" || path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func closeFileIfNeeded(f *os.File, path string) {
	if path == "-" || path == "" {
		return
	}
	_ = f.Close()
}
