package engine

// numPorts is the number of addressable output ports (indices 0..7).
const numPorts = 8

// PortSink receives a byte written to a given port index. Hosts attach one
// with Ports.Attach to observe OUT/ROUT traffic as it happens; the engine
// itself never blocks on a sink and never requires one to be attached.
type PortSink func(port int32, data byte)

// Ports wraps the raw 8-byte output-port array from the data model and
// optionally fans writes out to host-attached sinks, without changing the
// write-back semantics of OUT/ROUT: the byte array is always updated first,
// so State() reflects the latest write regardless of whether a sink is
// attached.
type Ports struct {
	out   [numPorts]byte
	sinks [numPorts]PortSink
}

// Attach registers sink to receive every future write to the given port
// index. Passing a nil sink detaches whatever was there before. Out-of-range
// indices are ignored, matching the rest of the engine's clamp-don't-panic
// discipline.
func (p *Ports) Attach(port int32, sink PortSink) {
	if port < 0 || port >= numPorts {
		return
	}
	p.sinks[port] = sink
}

// Write stores data at the given port index (a no-op if out of range) and
// forwards it to an attached sink, if any.
func (p *Ports) Write(port int32, data byte) {
	if port < 0 || port >= numPorts {
		return
	}
	p.out[port] = data
	if sink := p.sinks[port]; sink != nil {
		sink(port, data)
	}
}

// All returns a copy of the 8 port values for snapshotting.
func (p *Ports) All() [numPorts]byte {
	return p.out
}
