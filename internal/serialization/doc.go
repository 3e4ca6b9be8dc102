// Package serialization saves and loads named tensors in the SafeTensors
// format.
//
//	File Structure:
//	  [8 bytes: header size N (uint64 LE)]
//	  [N bytes: JSON header]
//	  [tensor data: raw little-endian bytes]
//
// The JSON header maps each tensor name to its dtype ("F32" or "F64"),
// shape and [begin, end) byte offsets within the data section. An optional
// "__metadata__" entry holds free-form string pairs. Tensors are laid out in
// ascending name order.
//
// Example usage:
//
//	// Save a network
//	if err := serialization.WriteFile("xor.safetensors", model.StateDict(), nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Restore it
//	file, err := serialization.ReadFile[float32]("xor.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := model.LoadStateDict(file.Tensors); err != nil {
//	    log.Fatal(err)
//	}
package serialization
