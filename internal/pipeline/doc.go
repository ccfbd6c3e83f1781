// Package pipeline orchestrates one enrichment run: vocabulary load, record
// iteration, resolution, sibling refinement, and the conservative apply.
package pipeline
