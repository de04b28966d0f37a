package zval

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Option instances allow to configure the value runtime.
type Option func(h *opt) error

// opt contains the available options.
type opt struct {
	logger            *zap.Logger
	metrics           Metrics
	diagnosticHandler DiagnosticHandler
	precision         int
	locale            language.Tag
}

// WithLogger configures the logger receiving diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *opt) error {
		o.logger = l

		return nil
	}
}

// WithMetrics configures the metrics collector.
func WithMetrics(m Metrics) Option {
	return func(o *opt) error {
		o.metrics = m

		return nil
	}
}

// WithDiagnosticHandler registers a function called for every soft diagnostic.
func WithDiagnosticHandler(h DiagnosticHandler) Option {
	return func(o *opt) error {
		o.diagnosticHandler = h

		return nil
	}
}

// WithStringPrecision sets the number of significant digits used when a
// float is converted to a string, like the precision ini setting.
// -1 selects the shortest round-trip representation.
func WithStringPrecision(p int) Option {
	return func(o *opt) error {
		if p < -1 || p > 40 {
			return fmt.Errorf("precision must be between -1 and 40, got %d", p)
		}
		o.precision = p

		return nil
	}
}

// WithLocale sets the language used by the LocaleString comparator.
func WithLocale(tag language.Tag) Option {
	return func(o *opt) error {
		o.locale = tag

		return nil
	}
}
