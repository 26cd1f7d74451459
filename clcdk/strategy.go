package clcdk

import (
	"context"
	"strings"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/crewlinker/cltopo/clzap"
	"go.uber.org/zap"
)

// Strategy declares the nodes of the topology. Each step only accepts handles of nodes built before it
// by the same strategy, this fixes the construction order.
type Strategy interface {
	// Name of the strategy.
	Name() string
	// Check enforces constraints on the config that are only valid for this strategy.
	Check(cfg Config) error

	BuildNetworkTopology(scope constructs.Construct, name ScopeName, cfg Config) (Network, error)
	BuildAccessControl(scope constructs.Construct, name ScopeName, net Network, cfg Config) (SecurityGroup, error)
	BuildComputeIdentity(scope constructs.Construct, name ScopeName, cfg Config) (InstanceProfile, error)
	BuildComputeInstance(
		scope constructs.Construct,
		name ScopeName,
		net Network,
		sg SecurityGroup,
		prof InstanceProfile,
		image ImageID,
		cfg Config,
	) (Instance, error)
}

// StrategyByName returns the strategy named 'name': explicit or composed.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", Explicit{}.Name():
		return Explicit{}, nil
	case Composed{}.Name():
		return Composed{}, nil
	default:
		return nil, configErr("Strategy", "unknown strategy: "+name, nil)
	}
}

// Deps are the collaborators that the build calls out to.
type Deps struct {
	Images ImageCatalog
	Zones  ZoneLister // optional, only required when zones are configured
	Logs   *zap.Logger // used when the context carries no logger
}

// Build declares the whole topology into 'scope'. All configuration is validated and every lookup is
// resolved before the first node is declared, so configuration and lookup failures leave 'scope' untouched.
func Build(ctx context.Context, scope constructs.Construct, strat Strategy, cfg Config, deps Deps) (*Topology, error) {
	logs := clzap.Log(ctx, deps.Logs).With(zap.String("strategy", strat.Name()))

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	if err := strat.Check(cfg); err != nil {
		return nil, err
	}

	if err := CheckZones(ctx, deps.Zones, cfg); err != nil {
		return nil, err
	}

	image, err := ResolveMachineImage(ctx, deps.Images, cfg.Image(), cfg.Region())
	if err != nil {
		return nil, err
	}

	logs.Info("resolved machine image",
		zap.String("parameter", cfg.Image().ParameterName()),
		zap.String("image_id", string(image)))

	topo := &Topology{Image: image}
	if topo.Network, err = strat.BuildNetworkTopology(scope, "Network", cfg); err != nil {
		return nil, err
	}

	logs.Debug("built network", zap.Int("subnets", len(topo.Network.SubnetIDs())))

	if topo.SecurityGroup, err = strat.BuildAccessControl(scope, "Access", topo.Network, cfg); err != nil {
		return nil, err
	}

	logs.Debug("built access control", zap.Int("ingress_rules", len(cfg.IngressRules())))

	if cfg.IdentityEnabled() {
		if topo.Profile, err = strat.BuildComputeIdentity(scope, "Identity", cfg); err != nil {
			return nil, err
		}

		logs.Debug("built compute identity", zap.Strings("managed_policies", cfg.ManagedPolicyArns()))
	}

	if topo.Instance, err = strat.BuildComputeInstance(scope, "Compute",
		topo.Network, topo.SecurityGroup, topo.Profile, image, cfg); err != nil {
		return nil, err
	}

	logs.Info("built topology", zap.String("instance_class", cfg.InstanceClass()))

	return topo, nil
}
