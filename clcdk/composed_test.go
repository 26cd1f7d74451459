package clcdk_test

import (
	"context"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/crewlinker/cltopo/clcdk"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("composed strategy", func() {
	var stack awscdk.Stack
	var cfg clcdk.Config

	BeforeEach(func() {
		stack = newTestStack("us-east-1")
		cfg = clcdk.NewDefaultConfig("my-app", "us-east-1").Copy(
			clcdk.WithIngressRules(clcdk.TCP(22, "0.0.0.0/0", "allow ssh access")))
	})

	It("should declare the same node types", func(ctx context.Context) {
		_, err := clcdk.Build(ctx, stack, clcdk.Composed{}, cfg, clcdk.Deps{Images: testCatalog})
		Expect(err).ToNot(HaveOccurred())

		tmpl := assertions.Template_FromStack(stack, nil)
		for typ, n := range map[string]float64{
			"AWS::EC2::VPC":                         1,
			"AWS::EC2::InternetGateway":             1,
			"AWS::EC2::VPCGatewayAttachment":        1,
			"AWS::EC2::Subnet":                      1,
			"AWS::EC2::RouteTable":                  1,
			"AWS::EC2::SubnetRouteTableAssociation": 1,
			"AWS::EC2::Route":                       1,
			"AWS::EC2::SecurityGroup":               1,
			"AWS::IAM::Role":                        1,
			"AWS::IAM::InstanceProfile":             1,
			"AWS::EC2::Instance":                    1,
		} {
			tmpl.ResourceCountIs(&typ, &n)
		}

		tmpl.HasResourceProperties(awsType("AWS::EC2::VPC"), map[string]any{
			"CidrBlock":          "192.168.0.0/16",
			"EnableDnsHostnames": true,
		})
		tmpl.HasResourceProperties(awsType("AWS::EC2::Subnet"), map[string]any{
			"CidrBlock":           "192.168.0.0/24",
			"MapPublicIpOnLaunch": true,
		})
		tmpl.HasResourceProperties(awsType("AWS::EC2::Route"), map[string]any{
			"DestinationCidrBlock": "0.0.0.0/0",
		})
		tmpl.HasResourceProperties(awsType("AWS::EC2::SecurityGroup"), map[string]any{
			"GroupName": "my-app-sg-ec2",
			"SecurityGroupEgress": []any{map[string]any{
				"CidrIp":     "0.0.0.0/0",
				"IpProtocol": "-1",
			}},
			"SecurityGroupIngress": []any{map[string]any{
				"CidrIp":      "0.0.0.0/0",
				"Description": "allow ssh access",
				"FromPort":    22,
				"IpProtocol":  "tcp",
				"ToPort":      22,
			}},
		})
		tmpl.HasResourceProperties(awsType("AWS::IAM::Role"), map[string]any{
			"RoleName": "my-app-role-ec2",
		})
		tmpl.HasResourceProperties(awsType("AWS::EC2::Instance"), map[string]any{
			"ImageId":             testImage,
			"InstanceType":        "t2.micro",
			"CreditSpecification": map[string]any{"CPUCredits": "standard"},
		})
	})

	It("should wait for internet connectivity and the role", func(ctx context.Context) {
		_, err := clcdk.Build(ctx, stack, clcdk.Composed{}, cfg, clcdk.Deps{Images: testCatalog})
		Expect(err).ToNot(HaveOccurred())

		routeID, _ := onlyResourceOf(stack, "AWS::EC2::Route")
		assocID, _ := onlyResourceOf(stack, "AWS::EC2::SubnetRouteTableAssociation")
		roleID, _ := onlyResourceOf(stack, "AWS::IAM::Role")
		_, inst := onlyResourceOf(stack, "AWS::EC2::Instance")
		Expect(inst["DependsOn"]).To(ContainElements(routeID, assocID, roleID))
	})

	It("should build the small ssh host end to end", func(ctx context.Context) {
		topo, err := clcdk.Build(ctx, stack, clcdk.Composed{}, clcdk.NewDefaultConfig("my-app", "us-east-1").Copy(
			clcdk.WithInstanceClass("burstable-small"),
			clcdk.WithIngressRules(clcdk.TCP(22, "0.0.0.0/0", "allow ssh access"))),
			clcdk.Deps{Images: testCatalog})
		Expect(err).ToNot(HaveOccurred())
		Expect(topo.Image).To(Equal(clcdk.ImageID(testImage)))

		tmpl := assertions.Template_FromStack(stack, nil)
		resources, _ := (*tmpl.ToJSON())["Resources"].(map[string]any)
		Expect(resources).To(HaveLen(11 + len(resourcesOf(stack, "AWS::CDK::Metadata"))))
		tmpl.HasResourceProperties(awsType("AWS::EC2::Instance"), map[string]any{
			"ImageId":      testImage,
			"InstanceType": "t2.small",
		})

		_, group := onlyResourceOf(stack, "AWS::EC2::SecurityGroup")
		props, _ := group["Properties"].(map[string]any)
		Expect(props["SecurityGroupIngress"]).To(ConsistOf(And(
			HaveKeyWithValue("IpProtocol", "tcp"),
			HaveKeyWithValue("FromPort", BeNumerically("==", 22)),
			HaveKeyWithValue("ToPort", BeNumerically("==", 22)),
			HaveKeyWithValue("CidrIp", "0.0.0.0/0"),
		)))
	})

	It("should omit ingress when the list is empty", func(ctx context.Context) {
		_, err := clcdk.Build(ctx, stack, clcdk.Composed{}, cfg.Copy(clcdk.WithIngressRules()),
			clcdk.Deps{Images: testCatalog})
		Expect(err).ToNot(HaveOccurred())

		tmpl := assertions.Template_FromStack(stack, nil)
		tmpl.HasResourceProperties(awsType("AWS::EC2::SecurityGroup"), map[string]any{
			"SecurityGroupIngress": assertions.Match_Absent(),
		})
	})

	It("should pin the configured zone", func(ctx context.Context) {
		_, err := clcdk.Build(ctx, stack, clcdk.Composed{}, cfg.Copy(clcdk.WithZones("us-east-1b")), clcdk.Deps{
			Images: testCatalog,
			Zones: zoneListerFunc(func(context.Context, string) ([]string, error) {
				return []string{"us-east-1a", "us-east-1b"}, nil
			}),
		})
		Expect(err).ToNot(HaveOccurred())

		tmpl := assertions.Template_FromStack(stack, nil)
		tmpl.HasResourceProperties(awsType("AWS::EC2::Subnet"), map[string]any{
			"AvailabilityZone": "us-east-1b",
		})
	})

	DescribeTable("unsupported networks", func(opt clcdk.ConfigOpt, snippet string) {
		err := clcdk.Composed{}.Check(cfg.Copy(opt))
		Expect(err).To(MatchError(clcdk.ErrConfiguration))
		Expect(err).To(MatchError(ContainSubstring(snippet)))
	},
		Entry("two subnets", clcdk.WithSubnetCidrs("192.168.0.0/24", "192.168.1.0/24"), "exactly one public subnet"),
		Entry("not at the base", clcdk.WithSubnetCidrs("192.168.4.0/24"), "allocates the subnet at 192.168.0.0/24"),
	)

	DescribeTable("should refuse networks it cannot declare", func(opt clcdk.ConfigOpt, snippet string) {
		Expect(func() {
			_, err := clcdk.Composed{}.BuildNetworkTopology(stack, "Network", cfg.Copy(opt))
			Expect(err).To(MatchError(clcdk.ErrConfiguration))
			Expect(err).To(MatchError(ContainSubstring(snippet)))
		}).ToNot(Panic())
		Expect(resourcesOf(stack, "AWS::EC2::VPC")).To(BeEmpty())
	},
		Entry("no subnets", clcdk.WithSubnetCidrs(), "exactly one public subnet, got 0"),
		Entry("malformed subnet", clcdk.WithSubnetCidrs("foo"), "subnet cidr is malformed"),
	)

	It("should leave the stack empty when the strategy refuses the config", func(ctx context.Context) {
		_, err := clcdk.Build(ctx, stack, clcdk.Composed{},
			cfg.Copy(clcdk.WithSubnetCidrs("192.168.0.0/24", "192.168.1.0/24")), clcdk.Deps{Images: testCatalog})
		Expect(err).To(MatchError(clcdk.ErrConfiguration))
		Expect(resourcesOf(stack, "AWS::EC2::VPC")).To(BeEmpty())
	})
})
