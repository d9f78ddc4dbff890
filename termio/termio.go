// Package termio loads Terms from GWAS summary TSV files and writes
// collapsed loci back out as TSV/BED.  Input files may be gzipped; the
// format is sniffed from the path.
package termio

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"

	"github.com/grailbio/gwas/locus"
	"github.com/grailbio/gwas/ontology"
)

// PvalueAttr is the attribute name under which each input row's p-value is
// recorded on its locus.
const PvalueAttr = "pvalue"

// ReadOpts defines the behavior of ReadTSV.
type ReadOpts struct {
	// Window is the search radius assigned to every locus read, in bases.
	Window locus.PosType
}

// ReadTSV reads a GWAS summary TSV with header columns
// Term/Chrom/Pos/Id/Pvalue, one SNP per row, and groups the rows into Terms
// keyed by term id.  Pos is one-based, per the usual text-file convention;
// it is converted to the zero-based internal coordinates on read, so a
// locus written back out by WriteTSV carries the same Pos it was read with.
// The p-value is stored on each locus under PvalueAttr.  Gzipped input is
// decompressed transparently based on the path suffix.
func ReadTSV(ctx context.Context, path string, opts ReadOpts) (terms map[string]*ontology.Term, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}

	r := tsv.NewReader(reader)
	r.HasHeaderRow = true
	r.UseHeaderNames = true
	r.RequireParseAllColumns = true

	row := struct {
		Term   string
		Chrom  string
		Pos    int64
		Id     string
		Pvalue float64
	}{}
	terms = map[string]*ontology.Term{}
	nRow := 0
	for {
		if err = r.Read(&row); err != nil {
			if err == io.EOF {
				err = nil
				break
			}
			err = errors.E(err, "read "+path)
			return
		}
		nRow++
		if row.Pos <= 0 || row.Pos >= math.MaxInt32 {
			err = errors.E(fmt.Sprintf("%s: position %d out of range", path, row.Pos))
			return
		}
		l := locus.NewSNP(row.Chrom, locus.PosType(row.Pos-1), row.Id)
		l.Window = opts.Window
		l.SetAttr(PvalueAttr, locus.FloatValue(row.Pvalue))
		t, ok := terms[row.Term]
		if !ok {
			t = ontology.NewTerm(row.Term, "")
			terms[row.Term] = t
		}
		t.AddLocus(l)
	}
	log.Printf("%s: read %d SNPs across %d terms", path, nRow, len(terms))
	return
}

// TermIDs returns the ids of the given term map in ascending order, for
// deterministic iteration.
func TermIDs(terms map[string]*ontology.Term) []string {
	ids := make([]string, 0, len(terms))
	for id := range terms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WriteBED writes loci as BED intervals covering their window-extended
// spans, one per line, with the locus id in the name column.  Coordinates
// are converted to BED's zero-based half-open convention, with the start
// clamped at zero.  windowSize is the same per-call override accepted by
// the overlap queries; pass locus.OwnWindow to use each locus's stored
// window.
func WriteBED(ctx context.Context, path string, loci []*locus.Locus, windowSize locus.PosType) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, dst, &err)
	w := tsv.NewWriter(dst.Writer(ctx))
	for _, l := range loci {
		start := l.WindowStart(windowSize)
		if start < 0 {
			start = 0
		}
		w.WriteString(l.Chrom)
		w.WriteInt64(int64(start))
		w.WriteInt64(int64(l.WindowEnd(windowSize)) + 1)
		w.WriteString(l.ID)
		if err = w.EndLine(); err != nil {
			return
		}
	}
	return w.Flush()
}

// TermLoci pairs a term id with loci reported for it.
type TermLoci struct {
	TermID string
	Loci   []*locus.Locus
}

// WriteTSV writes one row per (term, locus): Term, Chrom, Pos (1-based),
// Id, and the named attribute ("NA" when absent).
func WriteTSV(ctx context.Context, path, attr string, rows []TermLoci) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, dst, &err)
	w := tsv.NewWriter(dst.Writer(ctx))
	w.WriteString("Term\tChrom\tPos\tId\t" + attr)
	if err = w.EndLine(); err != nil {
		return
	}
	na := locus.StringValue("NA")
	for _, row := range rows {
		for _, l := range row.Loci {
			w.WriteString(row.TermID)
			w.WriteString(l.Chrom)
			w.WriteInt64(int64(l.Start) + 1) // 1-based in text output
			w.WriteString(l.ID)
			w.WriteString(l.AttrOrDefault(attr, na).String())
			if err = w.EndLine(); err != nil {
				return
			}
		}
	}
	return w.Flush()
}
