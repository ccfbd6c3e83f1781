// Package resolve matches token streams against vocabulary indices, scores
// competing candidates, applies context bias modules, and decides whether a
// single candidate can be accepted.
//
// Resolution is deterministic: given the same stream and index snapshot it
// always produces the same accepted candidate and the same ordered runner-up
// list. Ties are broken by the candidate key string, never by map iteration
// order. Ambiguity is a first-class outcome, not an error; the ranked
// runners-up are surfaced for human review.
package resolve
