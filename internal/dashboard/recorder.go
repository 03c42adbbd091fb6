package dashboard

// Outcomes reported to a Recorder.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeStale    = "stale"
	OutcomeDeclined = "declined"
)

// Recorder observes loader and mutator outcomes.
type Recorder interface {
	LoadFinished(loader, outcome string)
	MutationFinished(mutator, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) LoadFinished(string, string)     {}
func (nopRecorder) MutationFinished(string, string) {}

// Option configures an AdminBoard or TenantBoard.
type Option func(*options)

type options struct {
	recorder Recorder
}

// WithRecorder reports load and mutation outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
