package clcdk

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared since it caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the whole configuration before any resource is declared. It returns the first
// violation as a configuration error.
func Validate(cfg Config) error {
	if cfg == nil {
		return configErr("Config", "a config is required", nil)
	}

	if cfg.Name() == "" {
		return configErr("Config", "a name is required", nil)
	}

	if cfg.Region() == "" {
		return configErr("Config", "a region is required", nil)
	}

	if err := validateAddressing(cfg); err != nil {
		return err
	}

	for i, rule := range cfg.IngressRules() {
		if err := validate.Struct(rule); err != nil {
			return configErr("SecurityGroup", fmt.Sprintf("ingress rule %d (%s) is malformed", i, rule), err)
		}
	}

	for _, arn := range cfg.ManagedPolicyArns() {
		if !strings.HasPrefix(arn, "arn:") {
			return configErr("Role", "managed policy is not an arn: "+arn, nil)
		}
	}

	if err := validate.Struct(cfg.Image()); err != nil {
		return configErr("Image", "image criteria are malformed", err)
	}

	if err := cfg.Image().checkCombination(); err != nil {
		return configErr("Image", "no image is published for the criteria", err)
	}

	if _, err := LookupInstanceType(cfg.InstanceClass()); err != nil {
		return err
	}

	if err := validate.Struct(cfg.BootVolume()); err != nil {
		return configErr("Instance", "boot volume is malformed", err)
	}

	if err := validate.Var(cfg.CPUCredits(), "omitempty,oneof=standard unlimited"); err != nil {
		return configErr("Instance", "cpu credits must be standard or unlimited", err)
	}

	return nil
}

// validateAddressing checks that the network and subnet blocks are well formed, that every subnet is
// contained in the network and that subnets don't overlap.
func validateAddressing(cfg Config) error {
	network, err := parseCidr(cfg.NetworkCidr())
	if err != nil {
		return configErr("Vpc", "network cidr is malformed", err)
	}

	if len(cfg.SubnetCidrs()) < 1 {
		return configErr("Vpc", "at least one subnet is required", nil)
	}

	if len(cfg.Zones()) > 0 && len(cfg.Zones()) != len(cfg.SubnetCidrs()) {
		return configErr("Vpc", fmt.Sprintf("%d zones configured for %d subnets",
			len(cfg.Zones()), len(cfg.SubnetCidrs())), nil)
	}

	subnets := make([]netip.Prefix, 0, len(cfg.SubnetCidrs()))
	for i, s := range cfg.SubnetCidrs() {
		subnet, err := parseCidr(s)
		if err != nil {
			return configErr(subnetName(i), "subnet cidr is malformed", err)
		}

		if subnet.Bits() < network.Bits() || !network.Contains(subnet.Addr()) {
			return configErr(subnetName(i), fmt.Sprintf("subnet %s is not within network %s", subnet, network), nil)
		}

		for j, other := range subnets {
			if other.Overlaps(subnet) {
				return configErr(subnetName(i), fmt.Sprintf("subnet %s overlaps %s (%s)",
					subnet, other, subnetName(j)), nil)
			}
		}

		subnets = append(subnets, subnet)
	}

	return nil
}

// parseCidr parses an IPv4 block that must be in its canonical form: no host bits set.
func parseCidr(s string) (netip.Prefix, error) {
	pfx, err := netip.ParsePrefix(s)
	if err != nil {
		return pfx, fmt.Errorf("failed to parse prefix: %w", err)
	}

	if !pfx.Addr().Is4() {
		return pfx, fmt.Errorf("only ipv4 is supported, got: %s", s)
	}

	if pfx.Masked() != pfx {
		return pfx, fmt.Errorf("host bits are set, did you mean %s", pfx.Masked())
	}

	return pfx, nil
}
