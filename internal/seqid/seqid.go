package seqid

import (
	"fmt"
	"strconv"
	"time"
)

// Next computes the next sequential id for a prefixed series such as P001,
// P002, ... The suffix is 1 + the highest numeric suffix among existing ids
// (0 for an empty collection), zero-padded to three digits. Ids whose suffix
// does not parse are ignored. Because the maximum is taken over the live
// collection, deleting the highest-numbered record frees its number for the
// next add; that matches the historical behavior and is kept on purpose.
func Next(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		if len(id) <= len(prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

// Payment builds a ledger entry id from the wall clock, millisecond
// resolution: PAY-1712345678901.
func Payment(now time.Time) string {
	return fmt.Sprintf("PAY-%d", now.UnixMilli())
}
