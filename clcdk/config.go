package clcdk

import (
	"github.com/mitchellh/copystructure"
)

// Config describes the resource configuration that is shared between the construction
// steps of a topology. Every step reads only what it needs.
//
//nolint:interfacebloat
type Config interface {
	Copy(opts ...ConfigOpt) Config

	Name() string
	Region() string

	NetworkCidr() string
	SubnetCidrs() []string
	Zones() []string
	EnableDNSHostnames() bool

	IngressRules() []IngressRule

	IdentityEnabled() bool
	ManagedPolicyArns() []string

	Image() ImageCriteria
	InstanceClass() string
	BootVolume() BlockDevice
	CPUCredits() string
}

type config struct {
	NameVal               string
	RegionVal             string
	NetworkCidrVal        string
	SubnetCidrsVal        []string
	ZonesVal              []string
	EnableDNSHostnamesVal bool
	IngressRulesVal       []IngressRule
	IdentityEnabledVal    bool
	ManagedPolicyArnsVal  []string
	ImageVal              ImageCriteria
	InstanceClassVal      string
	BootVolumeVal         BlockDevice
	CPUCreditsVal         string
}

// ConfigOpt describes a configuration option.
type ConfigOpt func(*config)

// WithName config. The name prefixes the name tags of every resource.
func WithName(v string) ConfigOpt {
	return func(c *config) { c.NameVal = v }
}

// WithRegion config.
func WithRegion(v string) ConfigOpt {
	return func(c *config) { c.RegionVal = v }
}

// WithNetworkCidr config.
func WithNetworkCidr(v string) ConfigOpt {
	return func(c *config) { c.NetworkCidrVal = v }
}

// WithSubnetCidrs config.
func WithSubnetCidrs(v ...string) ConfigOpt {
	return func(c *config) { c.SubnetCidrsVal = v }
}

// WithZones pins each subnet to a named availability zone, index for index.
func WithZones(v ...string) ConfigOpt {
	return func(c *config) { c.ZonesVal = v }
}

// WithEnableDNSHostnames config.
func WithEnableDNSHostnames(v bool) ConfigOpt {
	return func(c *config) { c.EnableDNSHostnamesVal = v }
}

// WithIngressRules replaces the inbound allow-list.
func WithIngressRules(v ...IngressRule) ConfigOpt {
	return func(c *config) { c.IngressRulesVal = v }
}

// WithIdentity config.
func WithIdentity(v bool) ConfigOpt {
	return func(c *config) { c.IdentityEnabledVal = v }
}

// WithManagedPolicyArns config.
func WithManagedPolicyArns(v ...string) ConfigOpt {
	return func(c *config) { c.ManagedPolicyArnsVal = v }
}

// WithImage config.
func WithImage(v ImageCriteria) ConfigOpt {
	return func(c *config) { c.ImageVal = v }
}

// WithInstanceClass config, it takes a symbolic name from the size catalog.
func WithInstanceClass(v string) ConfigOpt {
	return func(c *config) { c.InstanceClassVal = v }
}

// WithBootVolume config.
func WithBootVolume(v BlockDevice) ConfigOpt {
	return func(c *config) { c.BootVolumeVal = v }
}

// WithCPUCredits config.
func WithCPUCredits(v string) ConfigOpt {
	return func(c *config) { c.CPUCreditsVal = v }
}

// NewConfig initializes a config implementation given the provided values.
func NewConfig(opts ...ConfigOpt) Config {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// Copy returns a copy of the config while allowing certain options to be changed.
func (c config) Copy(opts ...ConfigOpt) Config {
	v, err := copystructure.Copy(c)
	if err != nil {
		panic("clcdk: failed to deep copy: " + err.Error())
	}

	cfg, _ := v.(config)
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// Name config.
func (c config) Name() string { return c.NameVal }

// Region config.
func (c config) Region() string { return c.RegionVal }

// NetworkCidr config.
func (c config) NetworkCidr() string { return c.NetworkCidrVal }

// SubnetCidrs config.
func (c config) SubnetCidrs() []string { return c.SubnetCidrsVal }

// Zones config.
func (c config) Zones() []string { return c.ZonesVal }

// EnableDNSHostnames config.
func (c config) EnableDNSHostnames() bool { return c.EnableDNSHostnamesVal }

// IngressRules config.
func (c config) IngressRules() []IngressRule { return c.IngressRulesVal }

// IdentityEnabled config.
func (c config) IdentityEnabled() bool { return c.IdentityEnabledVal }

// ManagedPolicyArns config.
func (c config) ManagedPolicyArns() []string { return c.ManagedPolicyArnsVal }

// Image config.
func (c config) Image() ImageCriteria { return c.ImageVal }

// InstanceClass config.
func (c config) InstanceClass() string { return c.InstanceClassVal }

// BootVolume config.
func (c config) BootVolume() BlockDevice { return c.BootVolumeVal }

// CPUCredits config.
func (c config) CPUCredits() string { return c.CPUCreditsVal }

// NewDefaultConfig provides a config with the values of a small single instance network. The
// inbound allow-list is empty, callers must opt in to any ingress.
func NewDefaultConfig(name, region string) Config {
	return NewConfig(
		WithName(name),
		WithRegion(region),
		WithNetworkCidr("192.168.0.0/16"),
		WithSubnetCidrs("192.168.0.0/24"),
		WithEnableDNSHostnames(true),
		WithIdentity(true),
		WithImage(DefaultImageCriteria()),
		WithInstanceClass("burstable-micro"),
		WithBootVolume(BlockDevice{
			DeviceName:          "/dev/sda1",
			SizeGiB:             10, //nolint:gomnd
			Encrypted:           false,
			DeleteOnTermination: true,
			VolumeType:          "gp2",
		}),
		WithCPUCredits("standard"),
	)
}
