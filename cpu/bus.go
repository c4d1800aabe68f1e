package cpu

// Bus is everything the CPU core needs from its memory map. The console
// package's CpuBus satisfies it; tests substitute small in-memory fakes.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

// TraceWriter is the debug side-channel the executor reports each
// completed fetch to (spec.md §9: "a side-channel writer behind a
// capability... tests substitute an in-memory collector"). A nil
// TraceWriter disables tracing entirely.
type TraceWriter interface {
	WriteLine(line string)
}
