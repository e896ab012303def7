// Package config defines the command-line configuration surface for
// the alignment driver and the defaults that apply when an option is
// left unset.
package config

import (
	"flag"
	"fmt"
	"os"
	"runtime"
)

// Config collects every recognized option. Aligner-bound scoring
// parameters are carried opaquely: the pipeline never interprets
// them, it only forwards them to the aligner unchanged.
type Config struct {
	MappingFile string
	QueryFasta  string
	TargetFasta string
	OutputFile  string

	Threads int

	SplitQueries bool
	SAMFormat    bool

	MashmapDefaultIdentity float64
	WflignMaxLenMinor      int

	Mismatch     int
	GapOpen      int
	GapExtend    int
	MashDistance float64
	WFMinLength  int
	DistanceThreshold float64
	SegmentLength     int
	BlockLength       int
	ChainGap          int
	MaxPatchingScore  int
	ErodeK            int

	TSVOutputPrefix string
	PNGPlotPrefix   string
	WFPlotMaxSize   int
}

// Defaults returns a Config populated with the values used when an
// option is not given on the command line.
func Defaults() Config {
	return Config{
		Threads:                runtime.NumCPU(),
		MashmapDefaultIdentity: 0.95,
		WflignMaxLenMinor:      128 * 256,
		Mismatch:               4,
		GapOpen:                6,
		GapExtend:              2,
		MashDistance:           0.1,
		WFMinLength:            256,
		DistanceThreshold:      0.3,
		SegmentLength:          256,
		BlockLength:            3 * 256,
		ChainGap:               32,
		MaxPatchingScore:       200,
		ErodeK:                 0,
		WFPlotMaxSize:          1600,
	}
}

// Parse parses the given argument vector (conventionally os.Args[1:])
// against flag.NewFlagSet, starting from Defaults. On -h/-help the
// flag set prints its usage text and Parse returns flag.ErrHelp; any
// other misuse returns a descriptive error so the caller can report
// it as a fatal input error, per the taxonomy of malformed input.
func Parse(name string, args []string) (Config, error) {
	cfg := Defaults()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.MappingFile, "m", cfg.MappingFile, "mapping file (PAF-like mashmap output)")
	fs.StringVar(&cfg.QueryFasta, "q", cfg.QueryFasta, "query FASTA file (bgzip/gzip or plain)")
	fs.StringVar(&cfg.TargetFasta, "t", cfg.TargetFasta, "target/reference FASTA file, faidx-indexed")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "primary output file (\"-\" for stdout)")
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "worker pool size")
	fs.BoolVar(&cfg.SplitQueries, "split", cfg.SplitQueries, "split queries were pre-segmented by the mapper")
	fs.BoolVar(&cfg.SAMFormat, "sam-format", cfg.SAMFormat, "emit SAM instead of PAF")
	fs.Float64Var(&cfg.MashmapDefaultIdentity, "mashmap-default-identity", cfg.MashmapDefaultIdentity, "identity to assume when the mapping omits one")
	fs.IntVar(&cfg.WflignMaxLenMinor, "wflign-max-len-minor", cfg.WflignMaxLenMinor, "maximum head/tail reference padding")
	fs.IntVar(&cfg.Mismatch, "mismatch", cfg.Mismatch, "aligner mismatch penalty")
	fs.IntVar(&cfg.GapOpen, "gap-open", cfg.GapOpen, "aligner gap-open penalty")
	fs.IntVar(&cfg.GapExtend, "gap-extend", cfg.GapExtend, "aligner gap-extend penalty")
	fs.Float64Var(&cfg.MashDistance, "mash-distance", cfg.MashDistance, "aligner mash distance threshold")
	fs.IntVar(&cfg.WFMinLength, "wf-min-length", cfg.WFMinLength, "minimum length for wavefront-proper alignment")
	fs.Float64Var(&cfg.DistanceThreshold, "distance-threshold", cfg.DistanceThreshold, "estimated-identity threshold that triggers patching")
	fs.IntVar(&cfg.SegmentLength, "segment-length", cfg.SegmentLength, "patch segment length")
	fs.IntVar(&cfg.BlockLength, "block-length", cfg.BlockLength, "patch block length")
	fs.IntVar(&cfg.ChainGap, "chain-gap", cfg.ChainGap, "maximum gap chained across patch segments")
	fs.IntVar(&cfg.MaxPatchingScore, "max-patching-score", cfg.MaxPatchingScore, "maximum widened-window retries per patch segment")
	fs.IntVar(&cfg.ErodeK, "erode-k", cfg.ErodeK, "erosion window for low-identity tail trimming")
	fs.StringVar(&cfg.TSVOutputPrefix, "tsv-output-prefix", cfg.TSVOutputPrefix, "debug TSV output prefix; empty disables the debug writer")
	fs.StringVar(&cfg.PNGPlotPrefix, "png-plot-prefix", cfg.PNGPlotPrefix, "debug PNG plot prefix; empty disables plotting")
	fs.IntVar(&cfg.WFPlotMaxSize, "wfplot-max-size", cfg.WFPlotMaxSize, "maximum dimension of a debug wavefront plot")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.MappingFile == "" || cfg.QueryFasta == "" || cfg.TargetFasta == "" {
		return cfg, fmt.Errorf("config: -m, -q and -t are required")
	}
	if cfg.Threads < 1 {
		return cfg, fmt.Errorf("config: -threads must be >= 1, got %d", cfg.Threads)
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = "-"
	}
	return cfg, nil
}

// DebugEnabled reports whether the debug writer stage should be
// instantiated.
func (c Config) DebugEnabled() bool {
	return c.TSVOutputPrefix != ""
}

// Fprint writes a human-readable banner of the resolved configuration,
// mirroring the startup banner style of programs in this family.
func Fprint(w *os.File, cfg Config) {
	fmt.Fprintf(w, "mapping=%s query=%s target=%s output=%s threads=%d split=%v sam=%v\n",
		cfg.MappingFile, cfg.QueryFasta, cfg.TargetFasta, cfg.OutputFile,
		cfg.Threads, cfg.SplitQueries, cfg.SAMFormat)
}
