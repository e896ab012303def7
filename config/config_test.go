package config

import "testing"

func TestParseRequiresMandatoryFlags(t *testing.T) {
	_, err := Parse("wfalign", []string{"-m", "mapping.paf"})
	if err == nil {
		t.Fatal("expected error when -q and -t are missing")
	}
}

func TestParseDefaultsApplied(t *testing.T) {
	cfg, err := Parse("wfalign", []string{"-m", "m.paf", "-q", "q.fa", "-t", "t.fa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputFile != "-" {
		t.Fatalf("expected default output '-', got %q", cfg.OutputFile)
	}
	if cfg.Threads < 1 {
		t.Fatalf("expected at least 1 thread, got %d", cfg.Threads)
	}
	if cfg.DebugEnabled() {
		t.Fatal("expected debug disabled by default")
	}
}

func TestParseRejectsZeroThreads(t *testing.T) {
	_, err := Parse("wfalign", []string{"-m", "m.paf", "-q", "q.fa", "-t", "t.fa", "-threads", "0"})
	if err == nil {
		t.Fatal("expected error for -threads 0")
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse("wfalign", []string{
		"-m", "m.paf", "-q", "q.fa", "-t", "t.fa",
		"-threads", "4", "-sam-format", "-split",
		"-mismatch", "5", "-tsv-output-prefix", "dbg-",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Threads != 4 || !cfg.SAMFormat || !cfg.SplitQueries || cfg.Mismatch != 5 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if !cfg.DebugEnabled() {
		t.Fatal("expected debug enabled when tsv-output-prefix is set")
	}
}
