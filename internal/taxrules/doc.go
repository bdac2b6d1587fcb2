// Package taxrules holds the fixed tax-year tables: the standard deduction
// chart, the federal marginal brackets and the $100,000-and-over worksheet,
// and the Indiana state and county rates.
//
// Every function here is pure. Conditions the form must survive (an unknown
// filing status, a missing worksheet row) are logged and answered with a
// safe default rather than returned as errors.
package taxrules
