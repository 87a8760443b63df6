// Package todo owns the to-do item sequence and its persisted mirror.
//
// The whole sequence is stored as one JSON array under a single storage
// key and is replaced wholesale on every mutation:
//
//	[
//	  {"description": "buy milk", "completed": false, "index": 0},
//	  {"description": "call mum", "completed": true,  "index": 1}
//	]
//
// # Index invariant
//
// After every mutation returns, items[i].Index == i. Structural changes
// (Delete, ClearCompleted) renumber the remaining items before the write.
// Indices stored on disk are not trusted; Load re-derives them.
//
// # Self-healing
//
// A missing blob, a blob that is not JSON, or a blob that fails the
// embedded JSON Schema is replaced with an empty sequence, and the empty
// sequence is written back immediately.
//
// # Change notification
//
// Add, Toggle, Delete, ClearCompleted and Reload notify observers
// registered with OnChange after the write succeeds. Update does not:
// the edited text is already on screen.
package todo
