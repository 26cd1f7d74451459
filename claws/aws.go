// Package claws provides the AWS clients that back the lookups of a topology build.
package claws

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go/logging"
	"github.com/crewlinker/cltopo/clconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures this package.
type Config struct {
	// LoadConfigTimeout bounds the time given to config loading
	LoadConfigTimeout time.Duration `env:"LOAD_CONFIG_TIMEOUT" envDefault:"1s"`
	// SSMEndpoint allows pointing parameter lookups to a local emulator
	SSMEndpoint *url.URL `env:"SSM_ENDPOINT"`
	// EC2Endpoint allows pointing zone lookups to a local emulator
	EC2Endpoint *url.URL `env:"EC2_ENDPOINT"`
	// OverwriteAccessKeyID will overwrite the credentials used for the aws clients
	OverwriteAccessKeyID string `env:"OVERWRITE_ACCESS_KEY_ID"`
	// OverwriteSecretAccessKey will overwrite the credentials used for the aws clients
	OverwriteSecretAccessKey string `env:"OVERWRITE_SECRET_ACCESS_KEY"`
	// OverwriteSessionToken will overwrite the credentials used for the aws clients
	OverwriteSessionToken string `env:"OVERWRITE_SESSION_TOKEN"`
}

// New initialize an AWS config to be used to create clients for individual aws services. We would like
// run this during fx lifecycle phase to provide it with a context because it can block. But too many
// dependencies would have to wait for it.
func New(cfg Config, logs *zap.Logger) (acfg aws.Config, err error) {
	logs.Info("loading config", zap.Duration("timeout", cfg.LoadConfigTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadConfigTimeout)
	defer cancel()

	opts := []func(*config.LoadOptions) error{config.WithLogger(NewLogger(logs))}
	if cfg.OverwriteAccessKeyID != "" {
		logs.Info("overwriting credentials", zap.String("access_key_id", cfg.OverwriteAccessKeyID))
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.OverwriteAccessKeyID, cfg.OverwriteSecretAccessKey, cfg.OverwriteSessionToken)))
	}

	if acfg, err = config.LoadDefaultConfig(ctx, opts...); err != nil {
		return acfg, fmt.Errorf("failed to load default config: %w", err)
	}

	return acfg, nil
}

// NewSSM inits the parameter store client.
func NewSSM(cfg Config, acfg aws.Config) *ssm.Client {
	return ssm.NewFromConfig(acfg, func(o *ssm.Options) {
		if cfg.SSMEndpoint != nil {
			o.BaseEndpoint = aws.String(cfg.SSMEndpoint.String())
		}
	})
}

// NewEC2 inits the compute client.
func NewEC2(cfg Config, acfg aws.Config) *ec2.Client {
	return ec2.NewFromConfig(acfg, func(o *ec2.Options) {
		if cfg.EC2Endpoint != nil {
			o.BaseEndpoint = aws.String(cfg.EC2Endpoint.String())
		}
	})
}

// Logger adapts zap to the logging interface of the aws sdk.
type Logger struct{ logs *zap.Logger }

// NewLogger inits the adapter.
func NewLogger(logs *zap.Logger) *Logger {
	return &Logger{logs: logs.WithOptions(zap.AddCallerSkip(1))}
}

// Logf implements logging.Logger.
func (l *Logger) Logf(classification logging.Classification, format string, v ...any) {
	switch classification {
	case logging.Warn:
		l.logs.Warn(fmt.Sprintf(format, v...))
	default:
		l.logs.Debug(fmt.Sprintf(format, v...))
	}
}

// moduleName for naming conventions.
const moduleName = "claws"

// Provide the aws config and the clients as dependencies.
func Provide() fx.Option {
	return fx.Module(moduleName,
		// the incoming logger will be named after the module
		fx.Decorate(func(l *zap.Logger) *zap.Logger { return l.Named(moduleName) }),
		// provide the environment configuration
		clconfig.Provide[Config](strings.ToUpper(moduleName)+"_"),
		// provide the actual aws config
		fx.Provide(New),
		// provide the clients, as the interfaces the lookups use
		fx.Provide(
			fx.Annotate(NewSSM, fx.As(new(SSMAPI))),
			fx.Annotate(NewEC2, fx.As(new(EC2API)))),
		// provide the lookups
		fx.Provide(NewSSMImageCatalog, NewEC2ZoneLister),
	)
}
