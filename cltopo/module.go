package cltopo

import (
	"errors"
	"strings"

	"github.com/crewlinker/cltopo/claws"
	"github.com/crewlinker/cltopo/clcdk"
	"github.com/crewlinker/cltopo/clconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// moduleName for naming conventions.
const moduleName = "cltopo"

// ErrNoCatalog is returned when images are neither pinned nor can be read from the parameter store.
var ErrNoCatalog = errors.New("no image catalog, configure static images or provide the aws module")

// NewImageCatalog returns the pinned images if any are configured. Otherwise it reads the public parameters,
// each image is read at most once per run.
func NewImageCatalog(cfg Config, ssm *claws.SSMImageCatalog) (clcdk.ImageCatalog, error) {
	if len(cfg.StaticImages) > 0 {
		return clcdk.StaticImageCatalog(cfg.StaticImages), nil
	}

	if ssm == nil {
		return nil, ErrNoCatalog
	}

	return clcdk.NewMemoImageCatalog(ssm), nil
}

// NewZoneLister returns the zone lister, or nil when none is provided.
func NewZoneLister(ec2 *claws.EC2ZoneLister) clcdk.ZoneLister {
	if ec2 == nil {
		return nil
	}

	return ec2
}

// Provide the synthesizer as a dependency.
func Provide() fx.Option {
	return fx.Module(moduleName,
		// the incoming logger will be named after the module
		fx.Decorate(func(l *zap.Logger) *zap.Logger { return l.Named(moduleName) }),
		// provide the environment configuration
		clconfig.Provide[Config](strings.ToUpper(moduleName)+"_"),
		// the lookups are optional, the aws module provides them
		fx.Provide(
			fx.Annotate(NewImageCatalog, fx.ParamTags(``, `optional:"true"`)),
			fx.Annotate(NewZoneLister, fx.ParamTags(`optional:"true"`))),
		fx.Provide(fx.Annotate(New, fx.ParamTags(``, ``, ``, ``, `optional:"true"`))),
	)
}
