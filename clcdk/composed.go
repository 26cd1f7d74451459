package clcdk

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
)

// Composed declares the topology with the higher level constructs. The vpc construct provisions the
// subnet, gateway, attachment, route table, association and route in one call.
type Composed struct{}

// Name of the strategy.
func (Composed) Name() string { return "composed" }

// Check implements Strategy. The vpc construct allocates subnet blocks itself, starting at the base of the
// network, and gives each subnet its own route table. So only a single subnet at the base can be declared
// equivalently.
func (Composed) Check(cfg Config) error {
	if len(cfg.SubnetCidrs()) != 1 {
		return configErr("Vpc", fmt.Sprintf("composed network declares exactly one public subnet, got %d",
			len(cfg.SubnetCidrs())), nil)
	}

	network, err := parseCidr(cfg.NetworkCidr())
	if err != nil {
		return configErr("Vpc", "network cidr is malformed", err)
	}

	subnet, err := parseCidr(cfg.SubnetCidrs()[0])
	if err != nil {
		return configErr(subnetName(0), "subnet cidr is malformed", err)
	}

	if network.Addr() != subnet.Addr() {
		return configErr(subnetName(0), fmt.Sprintf("composed network allocates the subnet at %s/%d, got %s",
			network.Addr(), subnet.Bits(), subnet), nil)
	}

	return nil
}

// vpcNetwork implements Network.
type vpcNetwork struct{ vpc awsec2.Vpc }

func (n vpcNetwork) VpcID() *string     { return n.vpc.VpcId() }
func (n vpcNetwork) GatewayID() *string { return n.vpc.InternetGatewayId() }
func (n vpcNetwork) SubnetIDs() []*string {
	return lo.Map(*n.vpc.PublicSubnets(), func(s awsec2.ISubnet, _ int) *string { return s.SubnetId() })
}

func (n vpcNetwork) SubnetZones() []*string {
	return lo.Map(*n.vpc.PublicSubnets(), func(s awsec2.ISubnet, _ int) *string { return s.AvailabilityZone() })
}

func (n vpcNetwork) RouteTableIDs() []*string {
	return lo.Map(*n.vpc.PublicSubnets(), func(s awsec2.ISubnet, _ int) *string { return s.RouteTable().RouteTableId() })
}

// BuildNetworkTopology declares the network with the vpc construct.
func (Composed) BuildNetworkTopology(scope constructs.Construct, name ScopeName, cfg Config) (Network, error) {
	if len(cfg.SubnetCidrs()) < 1 {
		return nil, configErr("Vpc", "composed network declares exactly one public subnet, got 0", nil)
	}

	subnet, err := parseCidr(cfg.SubnetCidrs()[0])
	if err != nil {
		return nil, configErr(subnetName(0), "subnet cidr is malformed", err)
	}

	scope = name.ChildScope(scope)

	props := &awsec2.VpcProps{
		IpAddresses:        awsec2.IpAddresses_Cidr(jsii.String(cfg.NetworkCidr())),
		NatGateways:        jsii.Number(0),
		EnableDnsHostnames: jsii.Bool(cfg.EnableDNSHostnames()),
		EnableDnsSupport:   jsii.Bool(true),
		VpcName:            jsii.String(cfg.Name() + "-vpc"),

		// no custom resource to lock down the default group, the explicit variant doesn't have one either
		RestrictDefaultSecurityGroup: jsii.Bool(false),
		SubnetConfiguration: &[]*awsec2.SubnetConfiguration{{
			Name:                jsii.String("Public"),
			SubnetType:          awsec2.SubnetType_PUBLIC,
			CidrMask:            jsii.Number(subnet.Bits()),
			MapPublicIpOnLaunch: jsii.Bool(true),
		}},
	}

	if zones := cfg.Zones(); len(zones) > 0 {
		props.AvailabilityZones = jsii.Strings(zones...)
	} else {
		props.MaxAzs = jsii.Number(1)
	}

	return vpcNetwork{awsec2.NewVpc(scope, jsii.String("Vpc"), props)}, nil
}

// groupSecurityGroup implements SecurityGroup.
type groupSecurityGroup struct{ group awsec2.SecurityGroup }

func (g groupSecurityGroup) SecurityGroupID() *string { return g.group.SecurityGroupId() }

// BuildAccessControl declares the security group with the helper construct, it adds the egress rule
// that allows all outbound traffic.
func (Composed) BuildAccessControl(
	scope constructs.Construct, name ScopeName, net Network, cfg Config,
) (SecurityGroup, error) {
	vnet, ok := net.(vpcNetwork)
	if !ok {
		return nil, referenceErr("SecurityGroup", "requires a network built by the composed strategy")
	}

	scope = name.ChildScope(scope)
	groupName := cfg.Name() + "-sg-ec2"

	group := awsec2.NewSecurityGroup(scope, jsii.String("SecurityGroup"), &awsec2.SecurityGroupProps{
		Vpc:               vnet.vpc,
		AllowAllOutbound:  jsii.Bool(true),
		SecurityGroupName: jsii.String(groupName),
		Description:       jsii.String(groupName),
	})

	for _, rule := range cfg.IngressRules() {
		var desc *string
		if rule.Description != "" {
			desc = jsii.String(rule.Description)
		}

		group.AddIngressRule(awsec2.Peer_Ipv4(jsii.String(rule.SourceCidr)), rule.port(), desc, jsii.Bool(false))
	}

	return groupSecurityGroup{group}, nil
}

// roleProfile implements InstanceProfile. The instance construct declares the profile itself.
type roleProfile struct{ role awsiam.Role }

func (p roleProfile) RoleName() *string { return p.role.RoleName() }

// BuildComputeIdentity declares the role for the compute service.
func (Composed) BuildComputeIdentity(scope constructs.Construct, name ScopeName, cfg Config) (InstanceProfile, error) {
	scope = name.ChildScope(scope)

	policies := lo.Map(cfg.ManagedPolicyArns(), func(arn string, i int) awsiam.IManagedPolicy {
		return awsiam.ManagedPolicy_FromManagedPolicyArn(scope, jsii.String(fmt.Sprintf("Policy%d", i+1)), jsii.String(arn))
	})

	props := &awsiam.RoleProps{
		AssumedBy:   awsiam.NewServicePrincipal(jsii.String("ec2.amazonaws.com"), nil),
		Description: jsii.String("the ec2 role"),
		RoleName:    jsii.String(cfg.Name() + "-role-ec2"),
	}

	if len(policies) > 0 {
		props.ManagedPolicies = &policies
	}

	return roleProfile{awsiam.NewRole(scope, jsii.String("Role"), props)}, nil
}

// groupInstance implements Instance.
type groupInstance struct{ instance awsec2.Instance }

func (i groupInstance) InstanceID() *string { return i.instance.InstanceId() }

// BuildComputeInstance declares the instance with the helper construct, looking up the instance type by its
// symbolic class. Without a profile the construct declares a default role of its own.
func (Composed) BuildComputeInstance(
	scope constructs.Construct,
	name ScopeName,
	net Network,
	sg SecurityGroup,
	prof InstanceProfile,
	image ImageID,
	cfg Config,
) (Instance, error) {
	vnet, ok := net.(vpcNetwork)
	if !ok {
		return nil, referenceErr("Instance", "requires a network built by the composed strategy")
	}

	gsg, ok := sg.(groupSecurityGroup)
	if !ok {
		return nil, referenceErr("Instance", "requires a security group built by the composed strategy")
	}

	var role awsiam.IRole
	if prof != nil {
		rp, ok := prof.(roleProfile)
		if !ok {
			return nil, referenceErr("Instance", "requires an identity built by the composed strategy")
		}

		role = rp.role
	}

	if image == "" {
		return nil, referenceErr("Instance", "requires a resolved image")
	}

	itype, err := LookupInstanceType(cfg.InstanceClass())
	if err != nil {
		return nil, err
	}

	volumeType, ok := volumeTypes[cfg.BootVolume().VolumeType]
	if !ok {
		return nil, configErr("Instance", "unsupported volume type: "+cfg.BootVolume().VolumeType, nil)
	}

	scope = name.ChildScope(scope)
	boot := cfg.BootVolume()

	props := &awsec2.InstanceProps{
		Vpc:           vnet.vpc,
		VpcSubnets:    &awsec2.SubnetSelection{SubnetType: awsec2.SubnetType_PUBLIC},
		SecurityGroup: gsg.group,
		InstanceType:  itype,
		InstanceName:  jsii.String(cfg.Name() + "-ec2"),
		MachineImage: awsec2.MachineImage_GenericLinux(&map[string]*string{
			cfg.Region(): jsii.String(string(image)),
		}, nil),
		BlockDevices: &[]*awsec2.BlockDevice{{
			DeviceName: jsii.String(boot.DeviceName),
			Volume: awsec2.BlockDeviceVolume_Ebs(jsii.Number(boot.SizeGiB), &awsec2.EbsDeviceOptions{
				DeleteOnTermination: jsii.Bool(boot.DeleteOnTermination),
				Encrypted:           jsii.Bool(boot.Encrypted),
				VolumeType:          volumeType,
			}),
		}},
		Role: role,
	}

	inst := awsec2.NewInstance(scope, jsii.String("Instance"), props)
	if cfg.CPUCredits() != "" {
		// the construct has no credit option, set it on the underlying resource
		inst.Instance().SetCreditSpecification(&awsec2.CfnInstance_CreditSpecificationProperty{
			CpuCredits: jsii.String(cfg.CPUCredits()),
		})
	}

	// the construct only waits for connectivity when a public ip is requested explicitly
	inst.Node().AddDependency((*vnet.vpc.PublicSubnets())[0].InternetConnectivityEstablished())

	return groupInstance{inst}, nil
}

// volumeTypes maps the volume type names to the construct's enum.
var volumeTypes = map[string]awsec2.EbsDeviceVolumeType{
	"gp2":      awsec2.EbsDeviceVolumeType_GP2,
	"gp3":      awsec2.EbsDeviceVolumeType_GP3,
	"io1":      awsec2.EbsDeviceVolumeType_IO1,
	"io2":      awsec2.EbsDeviceVolumeType_IO2,
	"st1":      awsec2.EbsDeviceVolumeType_ST1,
	"sc1":      awsec2.EbsDeviceVolumeType_SC1,
	"standard": awsec2.EbsDeviceVolumeType_STANDARD,
}

