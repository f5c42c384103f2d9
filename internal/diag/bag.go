package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics for one input, up to an optional limit. Once
// full it counts what it refuses; the lexer driver treats a full bag as a
// reason to stop.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

// NewBag returns a bag holding at most max diagnostics; max <= 0 means
// no limit.
func NewBag(max int) *Bag {
	hint := 8
	if max > 0 && max < hint {
		hint = max
	}
	return &Bag{items: make([]Diagnostic, 0, hint), max: max}
}

// Add stores d and reports whether it fit.
func (b *Bag) Add(d Diagnostic) bool {
	if b.Full() {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Full reports whether the next Add would be refused.
func (b *Bag) Full() bool { return b.max > 0 && len(b.items) >= b.max }

// Cap returns the limit, 0 when unbounded.
func (b *Bag) Cap() int { return max(b.max, 0) }

func (b *Bag) Len() int     { return len(b.items) }
func (b *Bag) Dropped() int { return b.dropped }

// CountAtLeast counts stored diagnostics of severity sev or worse.
func (b *Bag) CountAtLeast(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, Diagnostic.IsError)
}

// Items returns the stored diagnostics. The slice aliases the bag.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends everything other holds, raising the limit if needed so
// nothing is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 {
		b.max = max(b.max, len(b.items)+len(other.items))
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders by primary span, then by severity (worst first), then code.
// Equal diagnostics keep their insertion order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		switch {
		case x.Primary == y.Primary:
		case x.Primary.Before(y.Primary):
			return -1
		default:
			return 1
		}
		if c := cmp.Compare(y.Severity, x.Severity); c != 0 {
			return c
		}
		return cmp.Compare(x.Code, y.Code)
	})
}
