// Package testutil provides utilities for testing steamshots components.
//
// Key components:
//   - SteamRoot: builds a synthetic Steam installation (loginusers,
//     libraries, app manifests, binary shortcuts, screenshot trees) under a
//     temp directory
//   - filesystem helpers and assertions for the symlink farm side
//
// All test data is defined inline by the tests themselves; no fixture files
// are checked in. Every helper takes the *testing.T and fails the test on
// setup errors, so call sites stay flat.
package testutil
