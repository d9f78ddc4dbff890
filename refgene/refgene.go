// Package refgene maintains a position-sorted index of reference genes and
// answers candidate-gene queries: which genes fall inside a locus's flanked
// search window.
package refgene

import (
	"fmt"
	"strings"

	"github.com/biogo/store/llrb"

	"github.com/grailbio/gwas/locus"
)

// Gene is a named genomic span, closed interval [Start, End] on Chrom.
type Gene struct {
	ID    string
	Name  string
	Chrom string
	Start locus.PosType
	End   locus.PosType
}

// Contains reports whether pos lies within the gene's span.
func (g *Gene) Contains(pos locus.PosType) bool {
	return pos >= g.Start && pos <= g.End
}

func (g *Gene) String() string {
	return fmt.Sprintf("%s:%d-%d(%s)", g.Chrom, g.Start, g.End, g.Name)
}

// Locus returns the gene's span as a zero-window Locus, usable as the
// reference position in Term.FlankingLoci.
func (g *Gene) Locus() *locus.Locus {
	return locus.New(g.Chrom, g.Start, g.End, 0, g.ID)
}

type key struct {
	chrom      string
	start, end locus.PosType
	id         string
	gene       *Gene
}

// Compare orders keys by (chrom, start, end, id) for use in llrb.
func (k key) Compare(c llrb.Comparable) int {
	k2 := c.(key)
	if d := strings.Compare(k.chrom, k2.chrom); d != 0 {
		return d
	}
	if k.start != k2.start {
		return int(k.start - k2.start)
	}
	if k.end != k2.end {
		return int(k.end - k2.end)
	}
	return strings.Compare(k.id, k2.id)
}

// Index is a start-position-sorted gene index.  Not safe for concurrent
// mutation.
type Index struct {
	byStart llrb.Tree
	// maxSpan bounds the leftward scan in Candidates: no gene on the
	// chromosome is longer than this.
	maxSpan map[string]locus.PosType
}

// NewIndex returns an empty gene index.
func NewIndex() *Index {
	return &Index{maxSpan: map[string]locus.PosType{}}
}

// Len returns the number of genes in the index.
func (x *Index) Len() int { return x.byStart.Len() }

// Add inserts a gene.  Re-adding a gene with identical (chrom, span, id)
// replaces the earlier entry.
func (x *Index) Add(g *Gene) {
	x.byStart.Insert(key{g.Chrom, g.Start, g.End, g.ID, g})
	if span := g.End - g.Start; span > x.maxSpan[g.Chrom] {
		x.maxSpan[g.Chrom] = span
	}
}

// Candidates returns the genes whose spans intersect the window-extended
// span of l, ascending by start position.  windowSize is the usual per-call
// window override; pass locus.OwnWindow to use l's stored window.
func (x *Index) Candidates(l *locus.Locus, windowSize locus.PosType) []*Gene {
	ws := l.WindowStart(windowSize)
	we := l.WindowEnd(windowSize)
	var out []*Gene
	// Genes are keyed by start, so a gene intersecting [ws, we] can start as
	// early as ws - maxSpan.
	from := key{chrom: l.Chrom, start: ws - x.maxSpan[l.Chrom]}
	to := key{chrom: l.Chrom, start: we + 1}
	x.byStart.DoRange(func(c llrb.Comparable) bool {
		g := c.(key).gene
		if g.End >= ws && g.Start <= we {
			out = append(out, g)
		}
		return false
	}, from, to)
	return out
}
