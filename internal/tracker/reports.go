package tracker

import (
	"fmt"
	"strings"
	"time"
)

// ScanReport lists the companies observed by a scan, in page order.
type ScanReport struct {
	Names []string
}

// Summary renders the scan outcome for the calling host.
func (r ScanReport) Summary() string {
	return fmt.Sprintf("Found %d companies: %s", len(r.Names), strings.Join(r.Names, ", "))
}

// EnrichReport counts the distinct contacts newly merged by an
// enrichment run.
type EnrichReport struct {
	Added int
}

// Summary renders the enrichment outcome for the calling host.
func (r EnrichReport) Summary() string {
	return fmt.Sprintf("Added %d contacts to sequence", r.Added)
}

// ChangesReport describes company membership changes since the last
// scan. NoPrior is set when no scan has completed yet.
type ChangesReport struct {
	NoPrior bool
	Since   time.Time
	Added   []string
	Removed []string
}

// Summary renders the change set for the calling host.
func (r ChangesReport) Summary() string {
	if r.NoPrior {
		return "No previous scan to compare with"
	}
	return fmt.Sprintf("Changes since %s:\nNew: %s\nRemoved: %s",
		r.Since.Format(time.RFC3339),
		strings.Join(r.Added, ", "),
		strings.Join(r.Removed, ", "))
}
