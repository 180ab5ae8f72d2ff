// Package serialization stores assembled integral tensors in the SafeTensors format.
//
//	File Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor entries plus "__metadata__"]
//	  [Tensor data: raw little-endian bytes, in name order]
//
// SafeTensors readers assume row-major data, so a column-major tensor of shape
// (n0, n1, ..., nk) is stored with the reversed shape (nk, ..., n1, n0) and the
// metadata entry "order": "F". complex128 tensors are stored as F64 with a trailing
// axis of length 2 holding the real and imaginary parts.
//
// The writer records the SHA-256 of the data section under the metadata key "sha256";
// the reader verifies it when present.
//
// Example usage:
//
//	entry, _ := serialization.EntryOf("int1e_ovlp", out)
//	err := serialization.SaveFile("ovlp.safetensors", []serialization.Entry{entry},
//	    map[string]string{"kind": "int1e_ovlp", "convention": "s1"})
//
//	f, _ := serialization.OpenFile("ovlp.safetensors")
//	ovlp, err := serialization.Load[float64](f, "int1e_ovlp")
package serialization
