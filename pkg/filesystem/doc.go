// Package filesystem provides the filesystem read surface for steamshots.
//
// This package contains the FS interface the discovery and reconciliation
// code observes through, plus the standard OS implementation.
package filesystem
