// Package locus represents positioned genomic features (SNPs or intervals)
// with a surrounding search window, and the comparison/overlap/merge
// operations that window-collapsing is built on.  Coordinates are zero-based
// throughout (text loaders/writers convert from and to the 1-based text
// convention at the boundary).  It assumes every position fits in a PosType,
// which is currently defined as int32 since that's what BAM files are
// limited to.
package locus

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// PosType is the genomic coordinate type.
type PosType int32

// OwnWindow is the window-override value meaning "use each locus's stored
// Window".  Any negative value behaves the same way.
const OwnWindow = PosType(-1)

// Locus is a single positioned feature occupying the closed interval
// [Start, End] on Chrom.  A SNP has Start == End.  Window is the radius added
// to both sides of the interval when testing overlap against neighbors; it
// plays no role in identity or ordering.
type Locus struct {
	Chrom string
	Start PosType
	End   PosType
	// Window is the search radius around [Start, End].  Overlap tests may
	// substitute a per-call override instead; the stored value is never
	// rewritten by queries.
	Window PosType
	ID     string

	attrs   map[string]Value
	subLoci []*Locus
}

// New returns a Locus spanning [start, end] with the given search window.
//
// REQUIRES: start <= end.
func New(chrom string, start, end, window PosType, id string) *Locus {
	if end < start {
		panic(fmt.Sprintf("locus.New: inverted interval [%d, %d]", start, end))
	}
	return &Locus{Chrom: chrom, Start: start, End: end, Window: window, ID: id}
}

// NewSNP returns a point locus at pos with a zero window.
func NewSNP(chrom string, pos PosType, id string) *Locus {
	return New(chrom, pos, pos, 0, id)
}

// Key identifies a Locus for set purposes.  Two loci with equal Keys are
// considered the same feature regardless of window, ID, or attributes.
type Key struct {
	Chrom      string
	Start, End PosType
}

// Key returns the set identity of the locus.
func (l *Locus) Key() Key { return Key{l.Chrom, l.Start, l.End} }

// Equal reports whether the two loci denote the same feature, i.e. have the
// same chromosome and span.
func (l *Locus) Equal(other *Locus) bool { return l.Key() == other.Key() }

// Compare provides the total order used for collapsing: by chromosome, then
// start, then end, then ID.  The ID tiebreak keeps ordering deterministic for
// distinct loci sharing a span.
func (l *Locus) Compare(other *Locus) int {
	if d := strings.Compare(l.Chrom, other.Chrom); d != 0 {
		return d
	}
	if l.Start != other.Start {
		return int(l.Start - other.Start)
	}
	if l.End != other.End {
		return int(l.End - other.End)
	}
	return strings.Compare(l.ID, other.ID)
}

// Sort orders loci ascending by Compare.
func Sort(loci []*Locus) {
	sort.Slice(loci, func(i, j int) bool { return loci[i].Compare(loci[j]) < 0 })
}

// WindowStart returns the lower bound of the window-extended interval.  A
// nonnegative override replaces the stored Window for this computation only.
func (l *Locus) WindowStart(override PosType) PosType {
	return l.Start - l.window(override)
}

// WindowEnd returns the upper bound of the window-extended interval.  A
// nonnegative override replaces the stored Window for this computation only.
func (l *Locus) WindowEnd(override PosType) PosType {
	return l.End + l.window(override)
}

func (l *Locus) window(override PosType) PosType {
	if override >= 0 {
		return override
	}
	return l.Window
}

// Overlaps reports whether the window-extended intervals of the two loci
// intersect.  Loci on different chromosomes never overlap.  A nonnegative
// override replaces both loci's stored windows for this test only; the
// stored windows are left untouched.
func (l *Locus) Overlaps(other *Locus, override PosType) bool {
	if l.Chrom != other.Chrom {
		return false
	}
	return l.WindowStart(override) <= other.WindowEnd(override) &&
		other.WindowStart(override) <= l.WindowEnd(override)
}

// SubLoci returns the original loci merged into this one, in merge order.  A
// locus that is not the result of a merge is its own sole sub-locus.
func (l *Locus) SubLoci() []*Locus {
	if len(l.subLoci) == 0 {
		return []*Locus{l}
	}
	return l.subLoci
}

// Merge combines two overlapping loci into one effective locus spanning
// both, with the larger of the two windows and the concatenation of both
// inputs' sub-loci.  Neither input is modified.
//
// REQUIRES: l.Chrom == other.Chrom.
func (l *Locus) Merge(other *Locus) *Locus {
	if l.Chrom != other.Chrom {
		panic(fmt.Sprintf("locus.Merge: cross-chromosome merge %s vs %s", l.Chrom, other.Chrom))
	}
	start := l.Start
	if other.Start < start {
		start = other.Start
	}
	end := l.End
	if other.End > end {
		end = other.End
	}
	window := l.Window
	if other.Window > window {
		window = other.Window
	}
	m := &Locus{
		Chrom:  l.Chrom,
		Start:  start,
		End:    end,
		Window: window,
		ID:     fmt.Sprintf("%s:%d-%d", l.Chrom, start, end),
	}
	m.subLoci = append(append([]*Locus{}, l.SubLoci()...), other.SubLoci()...)
	return m
}

// Center returns the midpoint of [Start, End].
func (l *Locus) Center() float64 {
	return (float64(l.Start) + float64(l.End)) / 2
}

// Distance returns the absolute distance between the centers of two loci, or
// +Inf if they lie on different chromosomes.  The loci's windows do not
// enter into it.
func Distance(a, b *Locus) float64 {
	if a.Chrom != b.Chrom {
		return math.Inf(1)
	}
	return math.Abs(a.Center() - b.Center())
}

// SetAttr records a named attribute on the locus.
func (l *Locus) SetAttr(name string, v Value) {
	if l.attrs == nil {
		l.attrs = map[string]Value{}
	}
	l.attrs[name] = v
}

// Attr returns the named attribute and whether it is present.
func (l *Locus) Attr(name string) (Value, bool) {
	v, ok := l.attrs[name]
	return v, ok
}

// AttrOrDefault returns the named attribute, or def if it is absent.
func (l *Locus) AttrOrDefault(name string, def Value) Value {
	if v, ok := l.attrs[name]; ok {
		return v
	}
	return def
}

// AttrFloat returns the named attribute coerced to float64.  An absent
// attribute yields +Inf, so it ranks last in ascending strongest-locus
// sorts; a present value that cannot be coerced is an error.
func (l *Locus) AttrFloat(name string) (float64, error) {
	v, ok := l.attrs[name]
	if !ok {
		return math.Inf(1), nil
	}
	f, err := v.Float64()
	if err != nil {
		return 0, fmt.Errorf("locus %s: attribute %q: %v", l.ID, name, err)
	}
	return f, nil
}

func (l *Locus) String() string {
	if l.Start == l.End {
		return fmt.Sprintf("%s:%d(%s)", l.Chrom, l.Start, l.ID)
	}
	return fmt.Sprintf("%s:%d-%d(%s)", l.Chrom, l.Start, l.End, l.ID)
}
