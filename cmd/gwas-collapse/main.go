// Copyright 2019 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
gwas-collapse reads a GWAS summary TSV (Term/Chrom/Pos/Id/Pvalue columns),
collapses each term's SNPs with overlapping search windows into effective
loci, and writes the collapsed intervals plus the strongest SNP per interval.
*/

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/gwas/locus"
	"github.com/grailbio/gwas/termio"
)

var (
	snpWindow = flag.Int("snp-window", 50000, "Search radius assigned to each SNP read from the input, in bases")
	window    = flag.Int("window", -1, "Per-call window override used when collapsing; -1 means each SNP's own window")
	attr      = flag.String("attr", termio.PvalueAttr, "Locus attribute ranking the strongest SNP per effective locus (smaller is stronger); empty disables the strongest-SNP output")
	outPrefix = flag.String("out", "gwas-collapse", "Output path prefix")
)

func collapseUsage() {
	fmt.Printf("Usage: %s [OPTIONS] summary.tsv\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = collapseUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one positional argument (summary TSV path) expected; please check flag syntax")
	}
	ctx := vcontext.Background()
	terms, err := termio.ReadTSV(ctx, flag.Arg(0), termio.ReadOpts{
		Window: locus.PosType(*snpWindow),
	})
	if err != nil {
		log.Panicf("%v", err)
	}

	override := locus.PosType(*window)
	var effective []*locus.Locus
	var strongest []termio.TermLoci
	for _, id := range termio.TermIDs(terms) {
		t := terms[id]
		effective = append(effective, t.EffectiveLoci(override)...)
		if *attr == "" {
			continue
		}
		best, err := t.StrongestLoci(*attr, override)
		if err != nil {
			log.Panicf("%v", err)
		}
		strongest = append(strongest, termio.TermLoci{TermID: id, Loci: best})
	}
	if err := termio.WriteBED(ctx, *outPrefix+".effective.bed", effective, override); err != nil {
		log.Panicf("%v", err)
	}
	if *attr != "" {
		if err := termio.WriteTSV(ctx, *outPrefix+".strongest.tsv", *attr, strongest); err != nil {
			log.Panicf("%v", err)
		}
	}
	log.Debug.Printf("exiting")
}
