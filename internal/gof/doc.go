// Package gof runs empirical distribution function goodness-of-fit tests
// against fully specified continuous distributions: the sample is sorted,
// mapped through the hypothesized CDF, reduced to a statistic, and the
// statistic's null survival probability from package nulldist is the p-value.
package gof
