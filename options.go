package pixelsort

// Option configures a host-level run (Apply, SortImage, ApplyRawChannel).
//
// Example:
//
//	stats, err := pixelsort.Apply(ctx, r, cfg,
//	    pixelsort.WithWorkers(4),
//	    pixelsort.WithProgress(func(done, total int) { ... }),
//	)
type Option func(*options)

// ProgressFunc receives the number of finished lines and the total.
// It may be called from several goroutines, but calls are serialized.
type ProgressFunc func(done, total int)

// options holds optional settings for a run.
type options struct {
	workers  int
	progress ProgressFunc
}

// defaultOptions returns the default run options.
func defaultOptions() options {
	return options{
		workers: 0, // GOMAXPROCS
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithWorkers sets the number of goroutines sorting lines.
// Zero or negative means GOMAXPROCS; 1 sorts sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithProgress installs a progress callback. It is invoked after every
// finished band of lines.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}
