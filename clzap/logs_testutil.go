package clzap

import (
	"io"

	"github.com/onsi/ginkgo/v2"
	"go.uber.org/fx"
	"go.uber.org/zap/zapcore"
)

// Test is a convenient fx option setup that can easily be included in all tests. It observed the logs
// for assertion and writes console output to the GinkgoWriter so all logs can easily be inspected if
// tests fail. An optional level overrides the configured level, e.g: to observe debug logs.
func Test(lvl ...zapcore.Level) fx.Option {
	opts := []fx.Option{
		Fx(),
		// in tests, always provide the ginkgo writer as the output writer so failing tests immediately show
		// the complete console output.
		fx.Supply(fx.Annotate(ginkgo.GinkgoWriter, fx.As(new(io.Writer)))),
		Observed(),
	}

	if len(lvl) > 0 {
		opts = append(opts, fx.Decorate(func(cfg Config) Config {
			cfg.Level = lvl[0]

			return cfg
		}))
	}

	return fx.Options(opts...)
}
