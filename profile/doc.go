// Package profile provides optional runtime profiling for arrowconf.
//
// Profiling is backed by [github.com/pkg/profile] and must be enabled at
// build time with the "pprof" build tag. Without the tag every operation is
// a no-op and [Modes] yields nothing.
//
//	go build -tags pprof .
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap memory profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace profiling
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	s := p.Start()
//	defer s.Stop()
//
// From the command line:
//
//	arrowconf --pprof-mode cpu out.toml < config.arrow
//	go tool pprof -http=: ~/.cache/arrowconf/pprof/cpu.pprof
//
// The tagged build also imports [net/http/pprof], registering the
// /debug/pprof/ handlers on [net/http.DefaultServeMux].
package profile
