// Package layout reads and writes tmux layouts.
//
// The live layout comes from a Lister, normally the tmux client. The saved
// layout lives in a single session file managed by Store, which hands the
// previous content to a backup.Rotator before every overwrite.
package layout
