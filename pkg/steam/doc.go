// Package steam reads Steam's on-disk state: the installation root, the
// login users file, installed app manifests across libraries, and per-user
// binary shortcut files.
//
// Everything here is a thin, tolerant reader. Nothing is cached between
// calls and nothing is ever written; composing the readers into a catalogue
// is pkg/catalog's job.
//
// Two on-disk formats appear. Text VDF (loginusers.vdf,
// libraryfolders.vdf, appmanifest_*.acf) is parsed with
// github.com/andygrunwald/vdf. Binary VDF (shortcuts.vdf) is parsed with
// github.com/wakeful-cloud/vdf.
package steam
