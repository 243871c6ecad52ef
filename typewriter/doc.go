// Package typewriter advances a reveal cursor through a content sequence in
// randomized chunks.
//
// Advance is a pure step function: it takes a State and the time elapsed since
// the previous step and returns the next State. Scheduling lives elsewhere, the
// caller decides when to step and how long it waited.
package typewriter
