// Package catalog builds the per-pass model of accounts and games from a
// located Steam installation.
//
// A catalogue is assembled fresh for every pass from four sources: the
// userdata directory (account enumeration), loginusers.vdf (display names),
// app manifests across all libraries (installed titles), and per-account
// shortcut files (non-Steam titles). Each source degrades independently;
// failures become Issues on the pass report rather than aborting.
package catalog
