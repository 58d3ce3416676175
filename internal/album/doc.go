// Package album defines the metadata record shared by every tractor stage.
//
// An Album carries album-level tags, the media source, the resolved audio codec
// and the ordered track schedule. Readers never build an Album directly; they
// return a Partial whose present fields overlay earlier sources when applied.
//
// # Key Types
//
// Album: the reconciled record consumed by command generation. Persisted as
// JSON by the library reader and reusable as a JSON metadata source.
//
// Track: a single cut (number, title, start offset, optional duration).
//
// Partial: an overlay whose nil fields are "absent".
//
// # Entry Points
//
// Merge/Album.Apply: fold partials in order, later fields win.
// Album.FillDurations: derive durations from successive start offsets.
// Album.FallbackFromPath: infer artist/album from an "Artist - Album" path.
// Load/Save: JSON metadata documents.
package album
