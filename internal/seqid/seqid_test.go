package seqid

import (
	"strings"
	"testing"
	"time"
)

func TestNextFromEmptyCollection(t *testing.T) {
	ids := []string{}
	for _, want := range []string{"P001", "P002", "P003"} {
		got := Next("P", ids)
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
		ids = append(ids, got)
	}
}

func TestNextAfterDeletingTailReusesNumber(t *testing.T) {
	// Deleting the highest-numbered record frees its suffix: the next add is
	// based on the current maximum, not on how many ids were ever issued.
	ids := []string{"E001", "E002"}
	if got := Next("E", ids); got != "E003" {
		t.Fatalf("expected E003, got %s", got)
	}
	ids = []string{"E001"} // E002 deleted
	if got := Next("E", ids); got != "E002" {
		t.Fatalf("expected E002 after tail delete, got %s", got)
	}
}

func TestNextAfterDeletingMidSequence(t *testing.T) {
	ids := []string{"C001", "C003"} // C002 deleted
	if got := Next("C", ids); got != "C004" {
		t.Fatalf("expected C004, got %s", got)
	}
}

func TestNextIgnoresMalformedSuffixes(t *testing.T) {
	ids := []string{"S001", "Sxyz", "S"}
	if got := Next("S", ids); got != "S002" {
		t.Fatalf("expected S002, got %s", got)
	}
}

func TestNextGrowsPastPadding(t *testing.T) {
	ids := []string{"P999"}
	if got := Next("P", ids); got != "P1000" {
		t.Fatalf("expected P1000, got %s", got)
	}
}

func TestPaymentID(t *testing.T) {
	now := time.UnixMilli(1712345678901)
	got := Payment(now)
	if got != "PAY-1712345678901" {
		t.Fatalf("unexpected payment id %s", got)
	}
	if !strings.HasPrefix(got, "PAY-") {
		t.Fatalf("payment id must carry PAY- prefix, got %s", got)
	}
}
