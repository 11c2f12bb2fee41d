package compute

// Backend runs an index range in chunks. Implementations must call fn
// over a partition of [0, n) with non-overlapping half-open ranges.
type Backend interface {
	Name() string
	Available() bool
	Run(n, minChunk int, fn func(start, end int))
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = NewCPUBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}
