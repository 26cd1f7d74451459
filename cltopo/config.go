// Package cltopo wires the configuration, the lookups and the builder into a synthesizer of the topology.
package cltopo

import (
	"github.com/crewlinker/cltopo/clcdk"
	"github.com/crewlinker/cltopo/clgraph"
)

// ImageConfig selects the machine image.
type ImageConfig struct {
	Generation     string `env:"GENERATION" envDefault:"amzn"`
	Edition        string `env:"EDITION" envDefault:"standard"`
	Virtualization string `env:"VIRTUALIZATION" envDefault:"hvm"`
	Storage        string `env:"STORAGE" envDefault:"gp2"`
	CPU            string `env:"CPU" envDefault:"x86_64"`
}

// BootConfig configures the boot volume of the instance.
type BootConfig struct {
	DeviceName          string  `env:"DEVICE_NAME" envDefault:"/dev/sda1"`
	SizeGiB             float64 `env:"SIZE_GIB" envDefault:"10"`
	Encrypted           bool    `env:"ENCRYPTED" envDefault:"false"`
	DeleteOnTermination bool    `env:"DELETE_ON_TERMINATION" envDefault:"true"`
	VolumeType          string  `env:"VOLUME_TYPE" envDefault:"gp2"`
}

// Config configures the topology from the environment.
type Config struct {
	// Strategy declares the topology with raw resources (explicit) or higher level constructs (composed)
	Strategy string `env:"STRATEGY" envDefault:"explicit" validate:"oneof=explicit composed"`
	// NetworkCidr is the block of the whole network
	NetworkCidr string `env:"NETWORK_CIDR" envDefault:"192.168.0.0/16" validate:"cidrv4"`
	// SubnetCidrs are the blocks of the public subnets
	SubnetCidrs []string `env:"SUBNET_CIDRS" envDefault:"192.168.0.0/24" validate:"min=1,dive,cidrv4"`
	// Zones optionally pins each subnet to a zone
	Zones []string `env:"ZONES"`
	// EnableDNSHostnames gives instances public dns names
	EnableDNSHostnames bool `env:"ENABLE_DNS_HOSTNAMES" envDefault:"true"`
	// Ingress is the inbound allow-list, e.g: tcp:22:0.0.0.0/0
	Ingress []clcdk.IngressRule `env:"INGRESS"`
	// IngressDescription describes every ingress rule
	IngressDescription string `env:"INGRESS_DESCRIPTION" envDefault:"allow ssh access"`
	// Identity declares a role and instance profile for the instance
	Identity bool `env:"IDENTITY" envDefault:"true"`
	// ManagedPolicyArns are attached to the role
	ManagedPolicyArns []string `env:"MANAGED_POLICY_ARNS"`
	// InstanceClass is a symbolic instance class, e.g: burstable-micro
	InstanceClass string `env:"INSTANCE_CLASS" envDefault:"burstable-micro"`
	// CPUCredits is the credit mode of burstable instances
	CPUCredits string `env:"CPU_CREDITS" envDefault:"standard"`
	// Image selects the machine image
	Image ImageConfig `envPrefix:"IMAGE_"`
	// BootVolume configures the boot disk
	BootVolume BootConfig `envPrefix:"BOOT_"`
	// StaticImages pins images per region instead of reading the public parameters, e.g: us-east-1:ami-0123
	StaticImages map[string]string `env:"STATIC_IMAGES"`
	// GraphOutput optionally writes the synthesized graph to a file
	GraphOutput string `env:"GRAPH_OUTPUT"`
	// GraphFormat is the format of the graph output
	GraphFormat clgraph.Format `env:"GRAPH_FORMAT" envDefault:"dot" validate:"oneof=dot mermaid yaml"`
}

// Topology returns the builder config for the application 'name' in 'region'.
func (c Config) Topology(name, region string) clcdk.Config {
	rules := make([]clcdk.IngressRule, len(c.Ingress))
	for i, rule := range c.Ingress {
		if rule.Description == "" {
			rule.Description = c.IngressDescription
		}

		rules[i] = rule
	}

	return clcdk.NewConfig(
		clcdk.WithName(name),
		clcdk.WithRegion(region),
		clcdk.WithNetworkCidr(c.NetworkCidr),
		clcdk.WithSubnetCidrs(c.SubnetCidrs...),
		clcdk.WithZones(c.Zones...),
		clcdk.WithEnableDNSHostnames(c.EnableDNSHostnames),
		clcdk.WithIngressRules(rules...),
		clcdk.WithIdentity(c.Identity),
		clcdk.WithManagedPolicyArns(c.ManagedPolicyArns...),
		clcdk.WithImage(clcdk.ImageCriteria(c.Image)),
		clcdk.WithInstanceClass(c.InstanceClass),
		clcdk.WithBootVolume(clcdk.BlockDevice(c.BootVolume)),
		clcdk.WithCPUCredits(c.CPUCredits),
	)
}
