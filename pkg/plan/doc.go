// Package plan turns a catalogue into the desired destination tree: one
// directory per account with games, one symlink per game.
//
// Planning is pure. Observation of what is actually on disk, and any
// mutation, belongs to pkg/reconcile.
package plan
