// Package grouping clusters photos by the alphanumeric prefix of their
// filenames and orders both the clusters and their members.
//
// Grouping is a pure function of the display names: the same item set
// always produces the same keys in the same order, whatever order the
// items arrive in.
package grouping
