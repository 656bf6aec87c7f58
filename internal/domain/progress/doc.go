// Package progress implements the spaced-repetition ladder and the pure
// transition engine that moves vocabulary entries along it. Every function is
// parameterized on an explicit reference time and returns new entries instead
// of mutating inputs, so batches of transitions stay deterministic and
// testable without a clock or a database.
package progress
