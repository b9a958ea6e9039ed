// Package lcg provides the deterministic pseudo-random generator shared by
// every kernel.
//
// The generator is a 32-bit linear congruential generator:
//
//	state = state*1664525 + 1013904223 (mod 2^32)
//
// Every draw advances the register by exactly one step and derives its value
// from the new state. Ports of the kernel set in other languages use the same
// constants and wraparound, so a given seed yields a bit-identical stream
// everywhere.
//
// An LCG is a plain value. Each caller owns its own instance; there is no
// package-level generator.
package lcg
