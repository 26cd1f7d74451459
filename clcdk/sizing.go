package clcdk

import (
	"sort"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/samber/lo"
)

// sizing pairs the instance class and size of a symbolic instance class.
type sizing struct {
	class awsec2.InstanceClass
	size  awsec2.InstanceSize
}

// sizes maps symbolic instance classes to concrete instance types.
var sizes = map[string]sizing{
	"burstable-nano":   {awsec2.InstanceClass_BURSTABLE2, awsec2.InstanceSize_NANO},
	"burstable-micro":  {awsec2.InstanceClass_BURSTABLE2, awsec2.InstanceSize_MICRO},
	"burstable-small":  {awsec2.InstanceClass_BURSTABLE2, awsec2.InstanceSize_SMALL},
	"burstable-medium": {awsec2.InstanceClass_BURSTABLE2, awsec2.InstanceSize_MEDIUM},
	"burstable-large":  {awsec2.InstanceClass_BURSTABLE2, awsec2.InstanceSize_LARGE},

	"burstable3-micro":  {awsec2.InstanceClass_BURSTABLE3, awsec2.InstanceSize_MICRO},
	"burstable3-small":  {awsec2.InstanceClass_BURSTABLE3, awsec2.InstanceSize_SMALL},
	"burstable3-medium": {awsec2.InstanceClass_BURSTABLE3, awsec2.InstanceSize_MEDIUM},

	"graviton-micro":  {awsec2.InstanceClass_BURSTABLE4_GRAVITON, awsec2.InstanceSize_MICRO},
	"graviton-small":  {awsec2.InstanceClass_BURSTABLE4_GRAVITON, awsec2.InstanceSize_SMALL},
	"graviton-medium": {awsec2.InstanceClass_BURSTABLE4_GRAVITON, awsec2.InstanceSize_MEDIUM},

	"general-large":  {awsec2.InstanceClass_STANDARD5, awsec2.InstanceSize_LARGE},
	"general-xlarge": {awsec2.InstanceClass_STANDARD5, awsec2.InstanceSize_XLARGE},
	"compute-large":  {awsec2.InstanceClass_COMPUTE5, awsec2.InstanceSize_LARGE},
	"memory-large":   {awsec2.InstanceClass_MEMORY5, awsec2.InstanceSize_LARGE},
}

// InstanceClasses lists the symbolic instance classes that are known, sorted.
func InstanceClasses() []string {
	names := lo.Keys(sizes)
	sort.Strings(names)

	return names
}

// LookupInstanceType resolves a symbolic instance class, e.g: "burstable-small" to its concrete instance
// type, e.g: t2.small.
func LookupInstanceType(name string) (awsec2.InstanceType, error) {
	sz, ok := sizes[name]
	if !ok {
		return nil, configErr("Instance", "unknown instance class: "+name, nil)
	}

	return awsec2.InstanceType_Of(sz.class, sz.size), nil
}
