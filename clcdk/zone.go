package clcdk

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
)

// ZoneLister lists the availability zones that are available in a region.
type ZoneLister interface {
	ListZones(ctx context.Context, region string) ([]string, error)
}

// CheckZones verifies that every zone in the config is available in the configured region. Without
// configured zones there is nothing to check: subnets then select zones by index at deploy time.
func CheckZones(ctx context.Context, lister ZoneLister, cfg Config) error {
	if len(cfg.Zones()) == 0 {
		return nil
	}

	if lister == nil {
		return configErr("Zones", "a zone lister is required to check configured zones", nil)
	}

	avail, err := lister.ListZones(ctx, cfg.Region())
	if err != nil {
		return lookupErr("Zones", "list zones in "+cfg.Region(), err)
	}

	for i, zone := range cfg.Zones() {
		if !lo.Contains(avail, zone) {
			return lookupErr(subnetName(i), fmt.Sprintf("zone %q is not available in %s", zone, cfg.Region()), nil)
		}
	}

	return nil
}

// zoneFor returns the zone of the subnet at index 'idx'. It is a pinned name if configured, else it
// selects the zone by index from the zones of the region. Both are stable across runs.
func zoneFor(cfg Config, idx int) *string {
	if zones := cfg.Zones(); len(zones) > idx {
		return jsii.String(zones[idx])
	}

	return awscdk.Fn_Select(jsii.Number(idx), awscdk.Fn_GetAzs(jsii.String("")))
}

func subnetName(idx int) string {
	return "Subnet" + strconv.Itoa(idx+1)
}
