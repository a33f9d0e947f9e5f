// Package factcheck finds factual issues in a manuscript and patches only
// the offending spans.
//
// Analyze asks the generator for a report of verbatim quotes and minimal
// corrections. Patch is pure: for every section it applies the issues in
// report order, replacing the first occurrence of each quote that is present.
// Quotes that match nothing are inert, and sections without matches come back
// equal to the input. Check combines both and never fails the run.
package factcheck
