/*Package classify sorts Hi-C read pairs into valid chromatin
  interactions and the ligation artifacts a proximity-ligation library
  produces.

  Hi-C Classification Concepts:

  The restriction digest cuts the genome into fragments, and each
  sequenced pair carries one read per ligation junction side. A pair is
  interpreted by mapping each read's alignment midpoint onto the digest
  and comparing the two fragments:

    1) same fragment, reads pointing inward (up Reverse, down Forward):
       DanglingEnd, an unligated fragment sequenced from both sides.
    2) same fragment, reads pointing outward (up Forward, down Reverse):
       SelfCircle, a fragment ligated onto itself.
    3) adjacent fragments (one shared cut site), either order:
       Religation, neighboring fragments joined back together.
    4) anything else: ValidInteraction, tagged with its FF/RR/FR/RF
       strand signature so downstream tools can balance the four
       orientation classes.

  A pair that cannot be interpreted at all, because a read is unmapped,
  cannot be ordered, lands outside the digest, or lands on overlapping
  fragment definitions, is Filtered rather than dropped silently, so
  every input pair is accounted for in the run statistics.

  Before classification the two reads are put in canonical order by
  (reference ID, alignment midpoint), with value-based tie-breaking, so
  results never depend on the order reads appear in the input file.

  Each category also gets a size: the separation of the midpoints for
  DanglingEnd and Religation, the circularized length for SelfCircle,
  and the summed distances to the pointed-at fragment boundaries for
  ValidInteraction, which approximates the sequenced insert length.
*/
package classify
