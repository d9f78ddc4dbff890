package ontology

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/gwas/locus"
)

// DefaultFlankWindow is the flanking-locus search radius used by callers
// that have no better cutoff, in bases.
const DefaultFlankWindow = locus.PosType(100000)

// Term is a named group of related loci, e.g. the SNPs annotated to one GWAS
// trait.  Loci are unique by locus.Key; insertion order is not meaningful.
//
// A Term is not safe for concurrent mutation.
type Term struct {
	id string
	// Desc is a free-text description of the term.
	Desc string

	attrs map[string]locus.Value
	loci  map[locus.Key]*locus.Locus
}

// NewTerm creates a Term with the given id and description, containing the
// given loci (deduplicated by locus.Key, first occurrence wins).
func NewTerm(id, desc string, loci ...*locus.Locus) *Term {
	t := &Term{
		id:    id,
		Desc:  desc,
		attrs: map[string]locus.Value{},
		loci:  map[locus.Key]*locus.Locus{},
	}
	for _, l := range loci {
		t.AddLocus(l)
	}
	return t
}

// ID returns the term identifier.
func (t *Term) ID() string { return t.id }

// Len returns the number of unique loci in the term.
func (t *Term) Len() int { return len(t.loci) }

// AddLocus inserts a locus into the term.  Adding a locus equal (by
// locus.Key) to one already present is a no-op.
func (t *Term) AddLocus(l *locus.Locus) {
	k := l.Key()
	if _, ok := t.loci[k]; ok {
		return
	}
	t.loci[k] = l
}

// Loci returns a snapshot of the term's loci in unspecified order.
func (t *Term) Loci() []*locus.Locus {
	out := make([]*locus.Locus, 0, len(t.loci))
	for _, l := range t.loci {
		out = append(out, l)
	}
	return out
}

// LocusList returns the term's loci.
//
// Deprecated: Use Loci instead.
func (t *Term) LocusList() []*locus.Locus {
	log.Error.Printf("ontology: Term.LocusList is deprecated, use Term.Loci")
	return t.Loci()
}

// SetAttr records a named attribute on the term.
func (t *Term) SetAttr(name string, v locus.Value) { t.attrs[name] = v }

// Attr returns the named term attribute and whether it is present.
func (t *Term) Attr(name string) (locus.Value, bool) {
	v, ok := t.attrs[name]
	return v, ok
}

// FlankingLoci returns the term's loci whose center lies within windowSize
// bases of gene's center.  windowSize is the sole cutoff; the per-locus
// Window fields play no role here.  Loci on other chromosomes are at
// infinite distance and never returned.  Output order is unspecified.
func (t *Term) FlankingLoci(gene *locus.Locus, windowSize locus.PosType) []*locus.Locus {
	var out []*locus.Locus
	for _, l := range t.loci {
		if locus.Distance(gene, l) <= float64(windowSize) {
			out = append(out, l)
		}
	}
	return out
}

// EffectiveLoci collapses loci with overlapping windows into merged
// "effective" loci:
//
//	Locus1:    |--------o-------|
//	Locus2:        |--------o--------|
//	Locus3:                         |--------o--------|
//	Effective: |--------o---+----------------o--------|
//
//	'|': window edge, used to collapse
//	'o': locus position (SNPs here)
//	'+': sub-locus, kept for downstream analysis
//
// The pass is greedy over position-sorted loci: each locus merges into the
// last accumulated group iff it overlaps that group's merged extent.
// Merging can widen a group, so a locus may be absorbed by a chain it would
// not have overlapped member-by-member; conversely a group, once left
// behind, is never reopened even if a later locus's window reaches back into
// it.  Output is ascending by group start.
//
// A nonnegative windowSize overrides every locus's stored Window for this
// call's overlap tests only; stored windows are never modified.  Pass
// locus.OwnWindow to use each locus's own window.
//
// An empty term yields an empty result.
func (t *Term) EffectiveLoci(windowSize locus.PosType) []*locus.Locus {
	loci := t.Loci()
	if len(loci) == 0 {
		return nil
	}
	locus.Sort(loci)
	collapsed := []*locus.Locus{loci[0]}
	for _, l := range loci[1:] {
		last := collapsed[len(collapsed)-1]
		if last.Overlaps(l, windowSize) {
			collapsed[len(collapsed)-1] = last.Merge(l)
		} else {
			collapsed = append(collapsed, l)
		}
	}
	log.Printf("%s: found %d SNPs -> %d effective SNPs", t.id, len(t.loci), len(collapsed))
	return collapsed
}

// StrongestLoci collapses the term's loci with EffectiveLoci, then returns
// one representative per merged group: the sub-locus with the numerically
// smallest attr value (smaller = stronger, per the p-value convention).
// Sub-loci missing attr rank at +Inf; if every sub-locus of a group is
// missing attr, the group's first sub-locus in merge order (ascending
// position) is returned.  Ties likewise keep the earliest sub-locus in
// merge order.  A present attr value that cannot be coerced to a number is
// an error.
//
// windowSize is forwarded to EffectiveLoci unchanged.
func (t *Term) StrongestLoci(attr string, windowSize locus.PosType) ([]*locus.Locus, error) {
	effective := t.EffectiveLoci(windowSize)
	strongest := make([]*locus.Locus, 0, len(effective))
	for _, group := range effective {
		subs := group.SubLoci()
		best := 0
		bestVal, err := subs[0].AttrFloat(attr)
		if err != nil {
			return nil, fmt.Errorf("term %s: %v", t.id, err)
		}
		for i, s := range subs[1:] {
			v, err := s.AttrFloat(attr)
			if err != nil {
				return nil, fmt.Errorf("term %s: %v", t.id, err)
			}
			if v < bestVal {
				best, bestVal = i+1, v
			}
		}
		strongest = append(strongest, subs[best])
	}
	return strongest, nil
}

func (t *Term) String() string {
	return fmt.Sprintf("Term: %s, Desc: %s, %d Loci", t.id, t.Desc, t.Len())
}
