// Package variant holds sibling kernels that repeat a core kernel's shape
// with an alternative library: other AEADs, digests, compressors and a
// selector-based text query.
//
// They reuse kernel.Payload, kernel.CipherKey and kernel.TextPayload so the
// input is identical to the core kernel they shadow. Variants are not part
// of the cross-port parity catalogue.
package variant
