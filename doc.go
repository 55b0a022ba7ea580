// Package voimage implements the native side of an image store for a
// managed runtime: decoded images stay resident in Go memory, the managed
// side holds integer handles, and every operation crosses the boundary
// through one of three call surfaces.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	voimage/            Root package (documentation only)
//	├── registry/       Handle table: id allocation, lookup, poisoning
//	├── imageops/       Codecs and resampling over disintegration/imaging
//	├── service/        Operation layer: validation, narrowing, logging
//	├── extcall/        Positional call adapter for slot-based hosts
//	├── tagwire/        Tagged little-endian message codec
//	├── wasmcall/       WASI surface: memory arena + tagged entry points
//	├── dispatch/       JSON dispatcher and line-oriented stdio server
//	└── cmd/
//	    ├── image-host/ stdio daemon serving the JSON surface
//	    └── image-wasm/ wasip1 build of the tagged-binary surface
//
// # Quick Start
//
// The service is the programmatic entry point:
//
//	svc := service.New(registry.New(), imageops.New())
//
//	id, err := svc.OpenPath("photo.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := svc.Thumbnail(uint64(id), 256, 256); err != nil {
//	    log.Fatal(err)
//	}
//	if err := svc.SavePath(uint64(id), "thumb.png"); err != nil {
//	    log.Fatal(err)
//	}
//	_ = svc.Close(uint64(id))
//
// # Handles
//
// Images are identified by 32-bit handles allocated from 1; 0 is reserved
// and never names an image. Handles are never reused within a process, so
// a stale handle fails with an invalid-id error instead of silently
// reaching a newer image. Closing an image retires its handle permanently.
//
// # Errors
//
// Operations report failure through error returns whose messages travel
// across the boundary verbatim. Dimensions arriving from the managed side
// are 64-bit and are checked against the native 32-bit domain; violations
// name the field and the offending value rather than truncating. If an
// internal fault poisons the registry, every subsequent operation fails
// with the same unavailable error: the store degrades, it does not abort
// the host.
//
// # Concurrency
//
// The registry serializes access with a single lock and allocates ids
// lock-free, so handle creation never blocks behind pixel work performed
// outside the critical section. All surfaces are safe for concurrent use.
package voimage
