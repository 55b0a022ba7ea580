//go:build wasip1

package wasmcall

import (
	"unsafe"

	"github.com/vo-lang/image/imageops"
	"github.com/vo-lang/image/registry"
	"github.com/vo-lang/image/service"
)

// One arena and one registry per module instance, created when the host
// instantiates the module.
var (
	arena    = NewArena()
	handlers = NewHandlers(service.New(registry.New(), imageops.New()))
)

//go:wasmexport allocate
func allocate(size uint32) uint32 {
	return uint32(arena.Alloc(size))
}

//go:wasmexport deallocate
func deallocate(ptr uint32, size uint32) {
	arena.Free(uintptr(ptr), size)
}

//go:wasmexport nativeOpen
func nativeOpen(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.Open(readInput(inPtr, inLen)), outLenPtr)
}

//go:wasmexport nativeOpenBytes
func nativeOpenBytes(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.OpenBytes(readInput(inPtr, inLen)), outLenPtr)
}

//go:wasmexport nativeNewRGBA
func nativeNewRGBA(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.NewRGBA(readInput(inPtr, inLen)), outLenPtr)
}

//go:wasmexport nativeResize
func nativeResize(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.Resize(readInput(inPtr, inLen)), outLenPtr)
}

//go:wasmexport nativeThumbnail
func nativeThumbnail(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.Thumbnail(readInput(inPtr, inLen)), outLenPtr)
}

//go:wasmexport nativeSave
func nativeSave(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.Save(readInput(inPtr, inLen)), outLenPtr)
}

//go:wasmexport nativeEncode
func nativeEncode(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.Encode(readInput(inPtr, inLen)), outLenPtr)
}

//go:wasmexport nativeEncodePNG
func nativeEncodePNG(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.EncodePNG(readInput(inPtr, inLen)), outLenPtr)
}

//go:wasmexport nativeSize
func nativeSize(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.Size(readInput(inPtr, inLen)), outLenPtr)
}

//go:wasmexport nativeClose
func nativeClose(inPtr, inLen, outLenPtr uint32) uint32 {
	return respond(handlers.Close(readInput(inPtr, inLen)), outLenPtr)
}

// readInput copies the request out of the caller's buffer. The copy
// detaches the request from memory the caller is free to deallocate while
// the operation runs.
func readInput(ptr, size uint32) []byte {
	if ptr == 0 || size == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), size)
	buf := make([]byte, size)
	copy(buf, src)
	return buf
}

// respond hands the response to the caller: the buffer is allocated from
// the arena, its length is stored through outLenPtr, and its address is
// returned. The caller owns the buffer and deallocates it. On allocation
// failure the stored length and the returned address are both 0.
func respond(out []byte, outLenPtr uint32) uint32 {
	ptr := arena.AllocBytes(out)
	if ptr == 0 {
		storeLen(outLenPtr, 0)
		return 0
	}
	storeLen(outLenPtr, uint32(len(out)))
	return uint32(ptr)
}

func storeLen(ptr, n uint32) {
	if ptr == 0 {
		return
	}
	*(*uint32)(unsafe.Pointer(uintptr(ptr))) = n
}
