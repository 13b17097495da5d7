/*
Package numeric holds the small evaluation primitives shared by the null
distribution engines.

  - Broadcast maps a scalar (statistic, samples) function over slices,
    repeating a length-one slice against the other operand.
  - Varange and VarangeRows build the fractional-start integer sequences
    (start, start+1, ...) that index series coefficient tables.
  - Polynomial evaluates ascending coefficients with Horner's scheme.
  - ExpBesselK and ExpBesselKs evaluate the exponentially scaled modified
    Bessel function of the second kind for real order by composite
    Gauss-Legendre quadrature of its cosh integral representation, with
    nodes taken once from gonum's integrate/quad. ExpBesselKs shares one
    pass over the nodes between several orders.

Nothing in this package keeps mutable state; the quadrature rule is built
on first use and only read afterwards.
*/
package numeric
