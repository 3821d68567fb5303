// Package cli provides the interactive gallery console.
//
// It wires configuration, the selected storage backend and a read–eval–print
// loop whose commands mirror the classic gallery menu: album, picture, tag,
// user and query operations. Commands are accepted by name ("open-album") or
// by menu number ("2").
//
// An album can be opened; picture and tag commands then act on it. The open
// album is a local snapshot that is re-read from the backend before every
// picture command, so changes made elsewhere are always visible.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli
