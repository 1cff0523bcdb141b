package diag

import "go.uber.org/zap"

// Sink receives non-fatal diagnostic notifications from the pipeline.
type Sink interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type zapSink struct {
	s *zap.SugaredLogger
}

func (z *zapSink) Debugf(format string, args ...any) { z.s.Debugf(format, args...) }
func (z *zapSink) Warnf(format string, args ...any)  { z.s.Warnf(format, args...) }

// New builds a zap-backed sink writing to stderr. With debug enabled it uses
// the development encoder at debug level; otherwise production config at warn
// level, so a quiet run stays quiet.
func New(debug bool) (Sink, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &zapSink{s: logger.Sugar()}, nil
}

type nopSink struct{}

func (nopSink) Debugf(string, ...any) {}
func (nopSink) Warnf(string, ...any)  {}

// Nop returns a sink that discards everything.
func Nop() Sink {
	return nopSink{}
}
