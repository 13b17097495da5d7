/*
Package nulldist computes the null distributions of the Kolmogorov-Smirnov,
Cramér-von Mises and Anderson-Darling statistics for n independent
uniform(0, 1) samples, which covers any fully specified continuous
hypothesized distribution once the data has gone through its CDF.

None of the three distributions has a usable closed form for finite n, so
each family stitches several evaluation strategies together. A family keeps
its strategies in an ordered Regimes list; the first regime whose predicate
holds for (statistic, samples) evaluates the point.

Kolmogorov-Smirnov (doi:10.18637/jss.v008.i18, doi:10.18637/jss.v039.i11):

  - exact formulas near both ends of the support (Ruben and Gambino),
  - Durbin's matrix formula raised to the n-th power with externalised
    base-2 exponents,
  - the doubled one-sided Smirnov tail for large statistics and n < 150,
  - the Pelz-Good asymptotic series for everything else.

DurbinRecurrenceRational is an exact big.Rat reference with the same
ExactMethod signature as DurbinMatrix, so a KSFamily can run on either.

Cramér-von Mises (doi:10.2307/2346175): the Csörgő-Faraway exact lower tail,
then the limiting Bessel series with Götze's first order 1/n correction.

Anderson-Darling (doi:10.18637/jss.v009.i02): the exact single sample
distribution, otherwise Marsaglia's limiting approximation plus a three
branch finite sample correction.

Every family rejects samples <= 0 with an INVALID_SAMPLES error before any
regime is consulted. A NaN statistic evaluates to NaN.
*/
package nulldist
