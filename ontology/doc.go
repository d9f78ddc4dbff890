/*Package ontology implements Terms: named groups of unique loci (typically
  GWAS SNPs annotated to one trait) and the queries that operate on their
  search windows.  EffectiveLoci collapses loci with overlapping windows into
  merged groups, StrongestLoci picks the best-ranked sub-locus out of each
  merged group, and FlankingLoci filters the group down to loci near a
  reference position.
  (Note that collapsing is a greedy single pass over position-sorted loci:
  each locus merges into the most recent group iff it overlaps that group's
  merged extent.  It is not a full transitive-closure union; see the
  EffectiveLoci comment.)
*/
package ontology
