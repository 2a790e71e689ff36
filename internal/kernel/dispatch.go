package kernel

// Dispatcher binds exactly one kernel tier at construction and forwards the
// four scanning operations to it for its lifetime. A parse that holds a
// dispatcher therefore observes one consistent boundary-detection
// implementation from start to finish; there is no per-call re-dispatch.
type Dispatcher struct {
	k Kernel
}

// NewDispatcher resolves the fastest tier the running CPU supports.
func NewDispatcher() *Dispatcher {
	return ForCapability(Detect())
}

// ForCapability constructs a dispatcher bound to a specific tier. The
// equivalence tests and introspection tooling use it to run a chosen kernel
// regardless of what Detect would pick.
func ForCapability(c Capability) *Dispatcher {
	switch c {
	case Vector8x:
		return &Dispatcher{k: swar8Kernel{}}
	case Vector4x:
		return &Dispatcher{k: swar4Kernel{}}
	}
	return &Dispatcher{k: scalarKernel{}}
}

func (d *Dispatcher) Capability() Capability {
	return d.k.Capability()
}

func (d *Dispatcher) SkipWhitespace(buf []byte, start int) int {
	return d.k.SkipWhitespace(buf, start)
}

func (d *Dispatcher) FindStringEnd(buf []byte, start int) int {
	return d.k.FindStringEnd(buf, start)
}

func (d *Dispatcher) FindStructuralChars(buf []byte, start int, out []Structural) int {
	return d.k.FindStructuralChars(buf, start, out)
}

func (d *Dispatcher) ValidateNumberChars(buf []byte, start, end int) bool {
	return d.k.ValidateNumberChars(buf, start, end)
}
