// Package zval implements PHP's runtime value model in Go: canonical array
// keys, copy-on-write ordered arrays, reference cells and the loose and strict
// comparison rules every array operation and sort depends on.
//
// Values are not safe for concurrent mutation. Call Init before sharing
// arrays between goroutines and do not reconfigure while they are in use.
package zval

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

const defaultPrecision = 14

var (
	logger            = zap.NewNop()
	metrics   Metrics = nullMetrics{}
	onDiag    DiagnosticHandler
	precision = defaultPrecision
	locale    = language.Und
)

// Init configures logging, metrics, diagnostics and conversion settings.
func Init(options ...Option) error {
	opt := &opt{precision: defaultPrecision, locale: language.Und}
	for _, o := range options {
		if err := o(opt); err != nil {
			return err
		}
	}

	logger = opt.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics = opt.metrics
	if metrics == nil {
		metrics = nullMetrics{}
	}

	onDiag = opt.diagnosticHandler
	precision = opt.precision
	locale = opt.locale
	resetCollators()

	if c := logger.Check(zapcore.DebugLevel, "value runtime configured"); c != nil {
		c.Write(zap.Int("precision", precision), zap.Stringer("locale", locale))
	}

	return nil
}

// Shutdown flushes the logger and restores the defaults.
func Shutdown() {
	_ = logger.Sync()

	logger = zap.NewNop()
	metrics = nullMetrics{}
	onDiag = nil
	precision = defaultPrecision
	locale = language.Und
	resetCollators()
}
