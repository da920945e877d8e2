// Package seqdiff computes minimal edit scripts between two sequences of tokens (lines, words, grapheme clusters, or any comparable values).
//
// Representation: a Result holds an ordered slice of Edits that tile both input sequences end to end. Each Edit covers a half-open range of the left sequence and
// a half-open range of the right sequence:
//   - OpEqual: both ranges have the same non-zero length and hold equal tokens.
//   - OpDelete: tokens present only in the left sequence (the right range is empty).
//   - OpInsert: tokens present only in the right sequence (the left range is empty).
//
// Invariants:
//   - Concatenating left[e.LeftStart:e.LeftEnd] for every OpEqual and OpDelete edit reproduces left.
//   - Concatenating right[e.RightStart:e.RightEnd] for every OpEqual and OpInsert edit reproduces right.
//   - No edit is empty and no two adjacent edits share an Op. Within a change region an OpDelete always precedes an OpInsert.
//
// Hunks and groups: Result.Hunks returns maximal runs of changes (typed OpInsert, OpDelete, or OpReplace). Result.Groups returns hunks padded with surrounding equal
// context, merging hunks whose separating context is small, which is what unified-diff style renderers want.
//
// Algorithm: common prefixes and suffixes are matched first, then Myers' O((N+M)D) middle-snake bisection finds a shortest edit script in linear space. Change runs
// are then slid along runs of equal tokens so that runs that can join do join, and each run settles at its last possible position. This makes output stable and
// readable: deletions come before insertions, and an insertion of "b a" after "a" is reported as such rather than as an insertion of "a b" before "a".
//
// Effort: Compute is unbounded. ComputeWithOptions and ComputeFunc accept Options that bound the input size (MaxTokens) and the edit distance (MaxEditDistance);
// exceeding either returns an error wrapping ErrEffortExceeded without returning a partial result.
//
// All functions are pure and safe for concurrent use on independent inputs.
package seqdiff
