// Package delta computes and applies structural differences between two flat
// key-value configuration snapshots.
//
// A Delta has three parts: additions (keys only in the patched snapshot),
// deletions (keys only in the base snapshot) and updates (keys in both whose
// values differ). Apply replays them on a copy of a snapshot in a fixed
// order, deletions, then updates, then additions, so an addition can bring
// back a deleted key and an update never creates a key.
//
// Snapshot keeps keys in insertion order; decoded snapshots keep the key
// order of the document they came from. Generate relies on that order to
// produce deterministic output.
package delta
