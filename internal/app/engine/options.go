package engine

// Options represents configuration options for the Engine.
type Options struct {
	// Depth is the number of visible levels per side of every book.
	Depth uint32
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		Depth: 5,
	}
}
