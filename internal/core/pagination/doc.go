// Package pagination lays grouped photos onto fixed-size pages.
//
// Layout is deterministic: the same groups and configuration always give
// the same pages. Each group gets a header band followed by rows of
// equally sized cells; rows and headers are never split across pages.
// Page indexes are 1-based so they can be printed directly as
// "Page N of M" once the total is known.
package pagination
