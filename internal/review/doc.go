// Package review implements the manuscript quality gate.
//
// A manuscript is scored 0-10. Scores of ApprovalThreshold or more pass
// unchanged. Lower scores get exactly one rewrite driven by the evaluation's
// weaknesses, missing topics and suggestions, and the rewrite is accepted
// without a second evaluation. The gate never fails the run: evaluation or
// rewrite errors yield the original manuscript with score 0 and
// OutcomeDegraded.
package review
