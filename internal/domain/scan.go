package domain

import "time"

// ScanFailure records a craft file that could not be loaded
type ScanFailure struct {
	Path string
	Err  error
}

// ScanReport holds statistics from a catalog load
type ScanReport struct {
	FilesScanned int
	CraftLoaded  int
	Failures     []ScanFailure
	Duration     time.Duration
}

// Failed returns the number of files skipped
func (r *ScanReport) Failed() int {
	return len(r.Failures)
}
