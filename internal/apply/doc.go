// Package apply turns enrichment proposals into conservative catalog
// writes. Fields are set only when empty unless the run is forced, warnings
// merge by union, and nothing is ever deleted, so re-running a pass over the
// same records is a no-op.
package apply
