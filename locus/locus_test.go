package locus

import (
	"math"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestSort(t *testing.T) {
	loci := []*Locus{
		NewSNP("2", 5, "d"),
		NewSNP("1", 200, "c"),
		New("1", 10, 30, 0, "b"),
		NewSNP("1", 10, "a"),
	}
	Sort(loci)
	var ids []string
	for _, l := range loci {
		ids = append(ids, l.ID)
	}
	expect.EQ(t, ids, []string{"a", "b", "c", "d"})
}

func TestEqual(t *testing.T) {
	a := New("1", 10, 10, 50, "a")
	b := New("1", 10, 10, 999, "b")
	expect.True(t, a.Equal(b)) // window and ID do not affect identity
	expect.False(t, a.Equal(NewSNP("2", 10, "c")))
	expect.False(t, a.Equal(NewSNP("1", 11, "d")))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		a, b     *Locus
		override PosType
		want     bool
	}{
		// Ranges [-10, 30] and [-5, 35] intersect.
		{New("1", 10, 10, 20, ""), New("1", 15, 15, 20, ""), OwnWindow, true},
		// [-10, 30] vs [180, 220].
		{New("1", 10, 10, 20, ""), New("1", 200, 200, 20, ""), OwnWindow, false},
		// Touching window edges count as overlap.
		{New("1", 10, 10, 5, ""), New("1", 20, 20, 5, ""), OwnWindow, true},
		// Different chromosomes never overlap.
		{New("1", 10, 10, 1000, ""), New("2", 10, 10, 1000, ""), OwnWindow, false},
		// Override shrinks the stored windows: no overlap.
		{New("1", 10, 10, 20, ""), New("1", 15, 15, 20, ""), 1, false},
		// Override widens zero windows: overlap.
		{New("1", 10, 10, 0, ""), New("1", 15, 15, 0, ""), 3, true},
	}
	for i, tt := range tests {
		expect.EQ(t, tt.a.Overlaps(tt.b, tt.override), tt.want, "case %d", i)
		expect.EQ(t, tt.b.Overlaps(tt.a, tt.override), tt.want, "case %d (flipped)", i)
	}
}

func TestOverrideDoesNotPersist(t *testing.T) {
	a := New("1", 10, 10, 20, "a")
	b := New("1", 15, 15, 20, "b")
	a.Overlaps(b, 1)
	expect.EQ(t, a.Window, PosType(20))
	expect.EQ(t, b.Window, PosType(20))
	expect.EQ(t, a.WindowStart(OwnWindow), PosType(-10))
	expect.EQ(t, a.WindowEnd(OwnWindow), PosType(30))
}

func TestMerge(t *testing.T) {
	a := New("1", 10, 10, 20, "a")
	b := New("1", 15, 15, 30, "b")

	// A fresh locus is its own sole sub-locus.
	expect.EQ(t, a.SubLoci(), []*Locus{a})

	m := a.Merge(b)
	expect.EQ(t, m.Start, PosType(10))
	expect.EQ(t, m.End, PosType(15))
	expect.EQ(t, m.Window, PosType(30))
	expect.EQ(t, m.SubLoci(), []*Locus{a, b})
	// Inputs are untouched.
	expect.EQ(t, a.End, PosType(10))
	expect.EQ(t, a.SubLoci(), []*Locus{a})

	// Merging a merged locus keeps the full sub-locus chain in order.
	c := New("1", 40, 40, 5, "c")
	m2 := m.Merge(c)
	expect.EQ(t, m2.Start, PosType(10))
	expect.EQ(t, m2.End, PosType(40))
	expect.EQ(t, m2.SubLoci(), []*Locus{a, b, c})
}

func TestDistance(t *testing.T) {
	expect.EQ(t, Distance(NewSNP("1", 100, ""), NewSNP("1", 110, "")), 10.0)
	expect.EQ(t, Distance(NewSNP("1", 110, ""), NewSNP("1", 100, "")), 10.0)
	expect.EQ(t, Distance(NewSNP("1", 100, ""), NewSNP("1", 100, "")), 0.0)
	// Interval loci measure center to center.
	expect.EQ(t, Distance(New("1", 10, 20, 0, ""), NewSNP("1", 5, "")), 10.0)
	expect.True(t, math.IsInf(Distance(NewSNP("1", 100, ""), NewSNP("2", 100, "")), 1))
}

func TestValueFloat64(t *testing.T) {
	f, err := FloatValue(0.25).Float64()
	expect.NoError(t, err)
	expect.EQ(t, f, 0.25)

	f, err = StringValue("1e-8").Float64()
	expect.NoError(t, err)
	expect.EQ(t, f, 1e-8)

	_, err = StringValue("n/a").Float64()
	expect.True(t, err != nil)

	_, err = BytesValue([]byte{1, 2}).Float64()
	expect.True(t, err != nil)
}

func TestAttrFloat(t *testing.T) {
	l := NewSNP("1", 100, "rs1")
	f, err := l.AttrFloat("pvalue")
	expect.NoError(t, err)
	expect.True(t, math.IsInf(f, 1)) // absent ranks last, not an error

	l.SetAttr("pvalue", FloatValue(0.001))
	f, err = l.AttrFloat("pvalue")
	expect.NoError(t, err)
	expect.EQ(t, f, 0.001)

	l.SetAttr("note", StringValue("suggestive"))
	_, err = l.AttrFloat("note")
	expect.True(t, err != nil)
}

func TestString(t *testing.T) {
	expect.EQ(t, NewSNP("1", 100, "rs1").String(), "1:100(rs1)")
	expect.EQ(t, New("2", 10, 20, 0, "g").String(), "2:10-20(g)")
}
