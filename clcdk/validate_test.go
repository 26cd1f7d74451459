package clcdk_test

import (
	"errors"

	"github.com/crewlinker/cltopo/clcdk"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("validation", func() {
	base := clcdk.NewDefaultConfig("my-app", "us-east-1")

	It("should fail without config", func() {
		Expect(clcdk.Validate(nil)).To(MatchError(clcdk.ErrConfiguration))
	})

	DescribeTable("invalid configs", func(cfg clcdk.Config, node, snippet string) {
		err := clcdk.Validate(cfg)
		Expect(err).To(MatchError(clcdk.ErrConfiguration))
		Expect(err).To(MatchError(ContainSubstring(snippet)))

		var cerr *clcdk.Error
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Name).To(Equal(node))
	},
		Entry("no name", base.Copy(clcdk.WithName("")), "Config", "a name is required"),
		Entry("no region", base.Copy(clcdk.WithRegion("")), "Config", "a region is required"),
		Entry("bad network", base.Copy(clcdk.WithNetworkCidr("192.168.0.0/33")), "Vpc", "malformed"),
		Entry("ipv6 network", base.Copy(clcdk.WithNetworkCidr("fd00::/48")), "Vpc", "only ipv4"),
		Entry("host bits", base.Copy(clcdk.WithNetworkCidr("192.168.1.0/16")), "Vpc", "did you mean 192.168.0.0/16"),
		Entry("no subnets", base.Copy(clcdk.WithSubnetCidrs()), "Vpc", "at least one subnet"),
		Entry("outside network",
			base.Copy(clcdk.WithSubnetCidrs("192.168.0.0/24", "10.0.0.0/24")), "Subnet2", "not within network"),
		Entry("wider than network",
			base.Copy(clcdk.WithSubnetCidrs("192.0.0.0/8")), "Subnet1", "not within network"),
		Entry("overlapping",
			base.Copy(clcdk.WithSubnetCidrs("192.168.0.0/24", "192.168.0.128/25")), "Subnet2", "overlaps"),
		Entry("zone count",
			base.Copy(clcdk.WithZones("us-east-1a", "us-east-1b")), "Vpc", "2 zones configured for 1 subnets"),
		Entry("bad ingress protocol",
			base.Copy(clcdk.WithIngressRules(clcdk.IngressRule{Protocol: "icmp", SourceCidr: "0.0.0.0/0"})),
			"SecurityGroup", "ingress rule 0"),
		Entry("bad ingress source",
			base.Copy(clcdk.WithIngressRules(clcdk.TCP(22, "everywhere", ""))), "SecurityGroup", "ingress rule 0"),
		Entry("inverted ports",
			base.Copy(clcdk.WithIngressRules(clcdk.IngressRule{
				Protocol: "tcp", FromPort: 90, ToPort: 80, SourceCidr: "0.0.0.0/0",
			})), "SecurityGroup", "ingress rule 0"),
		Entry("policy not an arn",
			base.Copy(clcdk.WithManagedPolicyArns("AmazonSSMManagedInstanceCore")), "Role", "not an arn"),
		Entry("bad image",
			base.Copy(clcdk.WithImage(clcdk.ImageCriteria{Generation: "windows"})), "Image", "image criteria"),
		Entry("paravirtual al2023",
			base.Copy(clcdk.WithImage(clcdk.ImageCriteria{
				Generation: "al2023", Edition: "standard", Virtualization: "pv", Storage: "gp2", CPU: "x86_64",
			})), "Image", "only has hvm images"),
		Entry("instance store amzn2",
			base.Copy(clcdk.WithImage(clcdk.ImageCriteria{
				Generation: "amzn2", Edition: "standard", Virtualization: "hvm", Storage: "s3", CPU: "x86_64",
			})), "Image", "no s3 backed images"),
		Entry("arm amzn",
			base.Copy(clcdk.WithImage(clcdk.ImageCriteria{
				Generation: "amzn", Edition: "standard", Virtualization: "hvm", Storage: "gp2", CPU: "arm64",
			})), "Image", "no arm64 images"),
		Entry("unknown class",
			base.Copy(clcdk.WithInstanceClass("huge")), "Instance", "unknown instance class"),
		Entry("bad boot volume",
			base.Copy(clcdk.WithBootVolume(clcdk.BlockDevice{DeviceName: "sda1", SizeGiB: 10, VolumeType: "gp2"})),
			"Instance", "boot volume"),
		Entry("bad credits",
			base.Copy(clcdk.WithCPUCredits("infinite")), "Instance", "cpu credits"),
	)

	It("should accept multiple disjoint subnets", func() {
		Expect(clcdk.Validate(base.Copy(
			clcdk.WithSubnetCidrs("192.168.0.0/24", "192.168.1.0/24", "192.168.2.0/23"),
		))).To(Succeed())
	})

	It("should accept a subnet spanning the network", func() {
		Expect(clcdk.Validate(base.Copy(clcdk.WithSubnetCidrs("192.168.0.0/16")))).To(Succeed())
	})
})
