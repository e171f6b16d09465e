package settings

// LogEvent describes a recoverable registry condition worth surfacing:
// re-registration of an existing key or resolution of an unknown one.
type LogEvent struct {
	Op      string
	Key     string
	Message string
}

// Operation names carried on LogEvent.Op.
const (
	OpRegister = "register"
	OpResolve  = "resolve"
)

// Logger records registry warnings.
type Logger interface {
	LogWarning(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogWarning implements Logger.
func (f LoggerFunc) LogWarning(event LogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogWarning(LogEvent) {}

// WithLogger attaches a warning logger to the registry.
func WithLogger(logger Logger) Option {
	return func(cfg *registryConfig) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}
