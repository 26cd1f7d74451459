package clcdk

import "github.com/aws/jsii-runtime-go"

// Network is a handle to a built network: the vpc, its subnets, the internet gateway and the routing
// towards it.
type Network interface {
	VpcID() *string
	SubnetIDs() []*string
	SubnetZones() []*string
	GatewayID() *string
	RouteTableIDs() []*string
}

// SecurityGroup is a handle to a built security group.
type SecurityGroup interface {
	SecurityGroupID() *string
}

// InstanceProfile is a handle to the identity of the compute instance.
type InstanceProfile interface {
	RoleName() *string
}

// Instance is a handle to a built compute instance.
type Instance interface {
	InstanceID() *string
}

// BlockDevice describes the boot disk of an instance.
type BlockDevice struct {
	DeviceName          string  `validate:"required,startswith=/dev/"`
	SizeGiB             float64 `validate:"gt=0,lte=16384"`
	Encrypted           bool
	DeleteOnTermination bool
	VolumeType          string `validate:"oneof=gp2 gp3 io1 io2 st1 sc1 standard"`
}

// Topology holds the handles of every node that was built, in construction order.
type Topology struct {
	Network       Network
	SecurityGroup SecurityGroup
	Profile       InstanceProfile // nil if the identity was disabled
	Image         ImageID
	Instance      Instance
}

// strs is a shorthand for the pointer slices that the cdk works with.
func strs(ss []string) *[]*string {
	if len(ss) == 0 {
		return nil
	}

	return jsii.Strings(ss...)
}
