//go:build wasip1

// Package main builds the image store as a WASI reactor module.
//
// The host drives the module entirely through its exports: allocate and
// deallocate manage buffer ownership, and one entry point per image
// operation exchanges tagged binary messages.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o image.wasm ./cmd/image-wasm
package main

import (
	_ "github.com/vo-lang/image/wasmcall" // Link the exported operations
)

// main is unused: the host instantiates the module and calls the exports
// directly.
func main() {}
