package pipeline

import "testing"

func TestProgressAdvanceAccumulates(t *testing.T) {
	p := NewProgress(100)
	p.Advance(10, 0.9)
	p.Advance(20, 0.8)
	if p.Current() != 30 {
		t.Fatalf("expected current 30, got %d", p.Current())
	}
	if p.Total() != 100 {
		t.Fatalf("expected total 100, got %d", p.Total())
	}
}

func TestProgressAdvanceWithoutIdentitySample(t *testing.T) {
	p := NewProgress(10)
	p.Advance(5, -1)
	if p.Current() != 5 {
		t.Fatalf("expected current 5, got %d", p.Current())
	}
	summary := p.Summary()
	if summary == "" {
		t.Fatal("expected non-empty summary")
	}
}

func TestProgressSummaryReportsMeans(t *testing.T) {
	p := NewProgress(10)
	p.Advance(4, 1.0)
	p.Advance(6, 0.5)
	summary := p.Summary()
	if summary == "" {
		t.Fatal("expected non-empty summary")
	}
}
