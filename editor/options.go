package editor

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/lvillar/receiptstudio/export"
	"github.com/lvillar/receiptstudio/layout"
	"github.com/lvillar/receiptstudio/notify"
	"github.com/lvillar/receiptstudio/profile"
	"github.com/lvillar/receiptstudio/sched"
)

// Option is a functional option for configuring a new Session via New.
type Option func(*sessionConfig)

type sessionConfig struct {
	templates       []layout.Template
	store           profile.Store
	notifier        notify.Notifier
	logger          *slog.Logger
	clock           sched.Clock
	historyCapacity int
	taxRate         decimal.Decimal
	confirm         func(prompt string) bool
	exportOpts      export.Options
}

// WithTemplates replaces the built-in layout set.
func WithTemplates(templates []layout.Template) Option {
	return func(c *sessionConfig) {
		c.templates = templates
	}
}

// WithProfileStore sets the store used to load and persist the company
// profile. Without a store the profile lives only for the session.
func WithProfileStore(store profile.Store) Option {
	return func(c *sessionConfig) {
		c.store = store
	}
}

// WithNotifier sets the sink for command status messages.
func WithNotifier(n notify.Notifier) Option {
	return func(c *sessionConfig) {
		c.notifier = n
	}
}

// WithLogger sets the session's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock driving the debounce timers. Tests use a fake
// clock to advance time manually.
func WithClock(clock sched.Clock) Option {
	return func(c *sessionConfig) {
		c.clock = clock
	}
}

// WithHistoryCapacity bounds the undo log.
func WithHistoryCapacity(capacity int) Option {
	return func(c *sessionConfig) {
		c.historyCapacity = capacity
	}
}

// WithTaxRate sets the tax rate in percent.
func WithTaxRate(percent decimal.Decimal) Option {
	return func(c *sessionConfig) {
		c.taxRate = percent
	}
}

// WithConfirm sets the callback consulted before destructive commands
// (new document, profile reset). Without one those commands proceed.
func WithConfirm(confirm func(prompt string) bool) Option {
	return func(c *sessionConfig) {
		c.confirm = confirm
	}
}

// WithExportOptions sets the options passed to the export pipeline.
func WithExportOptions(opts export.Options) Option {
	return func(c *sessionConfig) {
		c.exportOpts = opts
	}
}
