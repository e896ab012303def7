// Command wfalign computes base-level alignments for a set of
// approximate mappings produced by an upstream mapper, in the style
// of wfmash's align stage: read a mashmap-like mapping file plus a
// query and a target FASTA, and emit PAF or SAM records.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/pjotrp/wfmash/config"
	"github.com/pjotrp/wfmash/pipeline"
	"github.com/pjotrp/wfmash/utils"
)

func main() {
	cfg, err := config.Parse(utils.ProgramName, os.Args[1:])
	if err != nil {
		log.Fatalf("%s: %v", utils.ProgramName, err)
	}

	runID := uuid.NewString()
	fmt.Fprintf(os.Stderr, "%s %s (run %s, %s)\n", utils.ProgramName, utils.ProgramVersion, runID, utils.ProgramURL)
	config.Fprint(os.Stderr, cfg)

	progress, err := pipeline.Run(cfg)
	if err != nil {
		log.Fatalf("%s: %v", utils.ProgramName, err)
	}

	fmt.Fprintf(os.Stderr, "%s: run %s complete: %s\n", utils.ProgramName, runID, progress.Summary())
}
