// Package serialization saves and loads model parameters in the SafeTensors
// format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON object, one entry per tensor plus optional "__metadata__"]
//	  [Tensor data: raw little-endian float32, in header order]
//
// Only F32 tensors are supported. Files written by this package record a
// SHA-256 of the data section under the "sha256" metadata key; readers
// verify it when present.
//
// Example usage:
//
//	// Save a model
//	err := serialization.WriteSafeTensors("model.safetensors", model.StateDict(), nil)
//
//	// Load a model
//	file, err := serialization.ReadSafeTensors("model.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = model.LoadStateDict(file.Tensors)
package serialization
