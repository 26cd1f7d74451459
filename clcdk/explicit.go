package clcdk

import (
	"strconv"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/samber/lo"
)

// Explicit declares every node as a raw CloudFormation resource with all properties stated.
type Explicit struct{}

// Name of the strategy.
func (Explicit) Name() string { return "explicit" }

// Check implements Strategy, any valid config can be declared explicitly.
func (Explicit) Check(Config) error { return nil }

// cfnNetwork implements Network.
type cfnNetwork struct {
	vpc        awsec2.CfnVPC
	subnets    []awsec2.CfnSubnet
	zones      []*string
	gateway    awsec2.CfnInternetGateway
	attachment awsec2.CfnVPCGatewayAttachment
	routeTable awsec2.CfnRouteTable
	assocs     []awsec2.CfnSubnetRouteTableAssociation
	route      awsec2.CfnRoute
}

func (n cfnNetwork) VpcID() *string           { return n.vpc.Ref() }
func (n cfnNetwork) GatewayID() *string       { return n.gateway.Ref() }
func (n cfnNetwork) SubnetZones() []*string   { return n.zones }
func (n cfnNetwork) RouteTableIDs() []*string { return []*string{n.routeTable.Ref()} }
func (n cfnNetwork) SubnetIDs() []*string {
	return lo.Map(n.subnets, func(s awsec2.CfnSubnet, _ int) *string { return s.Ref() })
}

// nameTag returns the Name tag of the resource.
func nameTag(cfg Config, suffix string) *[]*awscdk.CfnTag {
	return &[]*awscdk.CfnTag{{Key: jsii.String("Name"), Value: jsii.String(cfg.Name() + "-" + suffix)}}
}

// BuildNetworkTopology declares the vpc, gateway, attachment, subnets, route table, associations and the
// default route. In that order.
func (Explicit) BuildNetworkTopology(scope constructs.Construct, name ScopeName, cfg Config) (Network, error) {
	scope = name.ChildScope(scope)
	net := cfnNetwork{}

	net.vpc = awsec2.NewCfnVPC(scope, jsii.String("Vpc"), &awsec2.CfnVPCProps{
		CidrBlock:          jsii.String(cfg.NetworkCidr()),
		EnableDnsHostnames: jsii.Bool(cfg.EnableDNSHostnames()),
		EnableDnsSupport:   jsii.Bool(true),
		Tags:               nameTag(cfg, "vpc"),
	})

	net.gateway = awsec2.NewCfnInternetGateway(scope, jsii.String("InternetGateway"), &awsec2.CfnInternetGatewayProps{
		Tags: nameTag(cfg, "igw"),
	})

	net.attachment = awsec2.NewCfnVPCGatewayAttachment(scope, jsii.String("GatewayAttachment"),
		&awsec2.CfnVPCGatewayAttachmentProps{
			VpcId:             net.vpc.Ref(),
			InternetGatewayId: net.gateway.Ref(),
		})

	for i, cidr := range cfg.SubnetCidrs() {
		zone := zoneFor(cfg, i)
		net.zones = append(net.zones, zone)
		net.subnets = append(net.subnets, awsec2.NewCfnSubnet(scope, jsii.String(subnetName(i)), &awsec2.CfnSubnetProps{
			VpcId:               net.vpc.Ref(),
			CidrBlock:           jsii.String(cidr),
			AvailabilityZone:    zone,
			MapPublicIpOnLaunch: jsii.Bool(true),
			Tags:                nameTag(cfg, "subnet-"+strconv.Itoa(i+1)),
		}))
	}

	net.routeTable = awsec2.NewCfnRouteTable(scope, jsii.String("RouteTable"), &awsec2.CfnRouteTableProps{
		VpcId: net.vpc.Ref(),
		Tags:  nameTag(cfg, "rtb"),
	})

	for i, subnet := range net.subnets {
		net.assocs = append(net.assocs, awsec2.NewCfnSubnetRouteTableAssociation(scope,
			jsii.String("RouteTableAssociation"+strconv.Itoa(i+1)),
			&awsec2.CfnSubnetRouteTableAssociationProps{
				RouteTableId: net.routeTable.Ref(),
				SubnetId:     subnet.Ref(),
			}))
	}

	net.route = awsec2.NewCfnRoute(scope, jsii.String("DefaultRoute"), &awsec2.CfnRouteProps{
		RouteTableId:         net.routeTable.Ref(),
		DestinationCidrBlock: jsii.String(anyIPv4),
		GatewayId:            net.gateway.Ref(),
	})

	// the route can only be created once the gateway is attached
	net.route.AddDependency(net.attachment)

	return net, nil
}

// cfnSecurityGroup implements SecurityGroup.
type cfnSecurityGroup struct{ group awsec2.CfnSecurityGroup }

func (g cfnSecurityGroup) SecurityGroupID() *string { return g.group.AttrGroupId() }

// BuildAccessControl declares the security group. Outbound traffic is allowed, inbound traffic only as
// listed by the config.
func (Explicit) BuildAccessControl(
	scope constructs.Construct, name ScopeName, net Network, cfg Config,
) (SecurityGroup, error) {
	cnet, ok := net.(cfnNetwork)
	if !ok {
		return nil, referenceErr("SecurityGroup", "requires a network built by the explicit strategy")
	}

	scope = name.ChildScope(scope)
	groupName := cfg.Name() + "-sg-ec2"

	props := &awsec2.CfnSecurityGroupProps{
		VpcId:            cnet.VpcID(),
		GroupDescription: jsii.String(groupName),
		GroupName:        jsii.String(groupName),
		SecurityGroupEgress: []any{&awsec2.CfnSecurityGroup_EgressProperty{
			IpProtocol:  jsii.String(ProtocolAll),
			CidrIp:      jsii.String(anyIPv4),
			Description: jsii.String("Allow all outbound traffic by default"),
		}},
		Tags: nameTag(cfg, "sg-ec2"),
	}

	if rules := cfg.IngressRules(); len(rules) > 0 {
		props.SecurityGroupIngress = lo.Map(rules, func(r IngressRule, _ int) any { return r.cfnIngress() })
	}

	return cfnSecurityGroup{awsec2.NewCfnSecurityGroup(scope, jsii.String("SecurityGroup"), props)}, nil
}

// cfnProfile implements InstanceProfile.
type cfnProfile struct {
	role    awsiam.CfnRole
	profile awsiam.CfnInstanceProfile
}

func (p cfnProfile) RoleName() *string { return p.role.Ref() }

// ec2TrustPolicy allows the compute service to assume a role.
func ec2TrustPolicy() map[string]any {
	return map[string]any{
		"Version": "2012-10-17",
		"Statement": []any{map[string]any{
			"Action":    "sts:AssumeRole",
			"Effect":    "Allow",
			"Principal": map[string]any{"Service": "ec2.amazonaws.com"},
		}},
	}
}

// BuildComputeIdentity declares a role for the compute service and the instance profile that binds it.
func (Explicit) BuildComputeIdentity(scope constructs.Construct, name ScopeName, cfg Config) (InstanceProfile, error) {
	scope = name.ChildScope(scope)
	prof := cfnProfile{}

	prof.role = awsiam.NewCfnRole(scope, jsii.String("Role"), &awsiam.CfnRoleProps{
		AssumeRolePolicyDocument: ec2TrustPolicy(),
		Description:              jsii.String("the ec2 role"),
		ManagedPolicyArns:        strs(cfg.ManagedPolicyArns()),
		RoleName:                 jsii.String(cfg.Name() + "-role-ec2"),
		Tags:                     nameTag(cfg, "role-ec2"),
	})

	prof.profile = awsiam.NewCfnInstanceProfile(scope, jsii.String("InstanceProfile"),
		&awsiam.CfnInstanceProfileProps{
			Roles: &[]*string{prof.role.Ref()},
		})

	return prof, nil
}

// cfnInstance implements Instance.
type cfnInstance struct{ instance awsec2.CfnInstance }

func (i cfnInstance) InstanceID() *string { return i.instance.Ref() }

// BuildComputeInstance declares the instance in the first subnet of the network. The profile may be nil.
func (Explicit) BuildComputeInstance(
	scope constructs.Construct,
	name ScopeName,
	net Network,
	sg SecurityGroup,
	prof InstanceProfile,
	image ImageID,
	cfg Config,
) (Instance, error) {
	cnet, ok := net.(cfnNetwork)
	if !ok || len(cnet.subnets) < 1 {
		return nil, referenceErr("Instance", "requires a network with a subnet built by the explicit strategy")
	}

	csg, ok := sg.(cfnSecurityGroup)
	if !ok {
		return nil, referenceErr("Instance", "requires a security group built by the explicit strategy")
	}

	var cprof *cfnProfile
	if prof != nil {
		p, ok := prof.(cfnProfile)
		if !ok {
			return nil, referenceErr("Instance", "requires an instance profile built by the explicit strategy")
		}

		cprof = &p
	}

	if image == "" {
		return nil, referenceErr("Instance", "requires a resolved image")
	}

	itype, err := LookupInstanceType(cfg.InstanceClass())
	if err != nil {
		return nil, err
	}

	scope = name.ChildScope(scope)
	boot := cfg.BootVolume()

	props := &awsec2.CfnInstanceProps{
		AvailabilityZone: cnet.zones[0],
		BlockDeviceMappings: []any{&awsec2.CfnInstance_BlockDeviceMappingProperty{
			DeviceName: jsii.String(boot.DeviceName),
			Ebs: &awsec2.CfnInstance_EbsProperty{
				DeleteOnTermination: jsii.Bool(boot.DeleteOnTermination),
				Encrypted:           jsii.Bool(boot.Encrypted),
				VolumeSize:          jsii.Number(boot.SizeGiB),
				VolumeType:          jsii.String(boot.VolumeType),
			},
		}},
		ImageId:          jsii.String(string(image)),
		InstanceType:     itype.ToString(),
		SecurityGroupIds: &[]*string{csg.SecurityGroupID()},
		SubnetId:         cnet.subnets[0].Ref(),
		Tags:             nameTag(cfg, "ec2"),
	}

	if cfg.CPUCredits() != "" {
		props.CreditSpecification = &awsec2.CfnInstance_CreditSpecificationProperty{
			CpuCredits: jsii.String(cfg.CPUCredits()),
		}
	}

	if cprof != nil {
		props.IamInstanceProfile = cprof.profile.Ref()
	}

	instance := awsec2.NewCfnInstance(scope, jsii.String("Instance"), props)

	// the subnet has internet connectivity once it is associated and the default route exists
	instance.AddDependency(cnet.route)
	instance.AddDependency(cnet.assocs[0])
	if cprof != nil {
		instance.AddDependency(cprof.role)
	}

	return cfnInstance{instance}, nil
}
