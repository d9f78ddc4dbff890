package refgene

import (
	"io"
	"math"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"

	"github.com/grailbio/gwas/locus"
)

// Read parses a gene annotation TSV with header columns
// Id/Name/Chrom/Start/End (coordinates one-based, closed, converted to the
// zero-based internal convention on read) and returns a populated Index.
func Read(r io.Reader) (*Index, error) {
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	tr.RequireParseAllColumns = true

	row := struct {
		Id    string
		Name  string
		Chrom string
		Start int64
		End   int64
	}{}
	x := NewIndex()
	nLine := 0
	for {
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "refgene: line %d", nLine+1)
		}
		nLine++
		if row.Start <= 0 || row.End < row.Start || row.End >= math.MaxInt32 {
			return nil, errors.Errorf("refgene: line %d: invalid span [%d, %d]", nLine, row.Start, row.End)
		}
		x.Add(&Gene{
			ID:    row.Id,
			Name:  row.Name,
			Chrom: row.Chrom,
			Start: locus.PosType(row.Start - 1),
			End:   locus.PosType(row.End - 1),
		})
	}
	return x, nil
}
