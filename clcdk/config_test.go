package clcdk_test

import (
	"github.com/crewlinker/cltopo/clcdk"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("config", func() {
	It("should provide defaults", func() {
		cfg := clcdk.NewDefaultConfig("my-app", "us-east-1")
		Expect(cfg.Name()).To(Equal("my-app"))
		Expect(cfg.Region()).To(Equal("us-east-1"))
		Expect(cfg.NetworkCidr()).To(Equal("192.168.0.0/16"))
		Expect(cfg.SubnetCidrs()).To(Equal([]string{"192.168.0.0/24"}))
		Expect(cfg.Zones()).To(BeEmpty())
		Expect(cfg.EnableDNSHostnames()).To(BeTrue())
		Expect(cfg.IngressRules()).To(BeEmpty())
		Expect(cfg.IdentityEnabled()).To(BeTrue())
		Expect(cfg.Image()).To(Equal(clcdk.DefaultImageCriteria()))
		Expect(cfg.InstanceClass()).To(Equal("burstable-micro"))
		Expect(cfg.BootVolume().SizeGiB).To(Equal(float64(10)))
		Expect(cfg.BootVolume().DeleteOnTermination).To(BeTrue())
		Expect(cfg.CPUCredits()).To(Equal("standard"))
		Expect(clcdk.Validate(cfg)).To(Succeed())
	})

	It("should copy deeply", func() {
		cfg1 := clcdk.NewDefaultConfig("my-app", "us-east-1").Copy(
			clcdk.WithSubnetCidrs("192.168.0.0/24", "192.168.1.0/24"))
		cfg2 := cfg1.Copy(clcdk.WithInstanceClass("burstable-small"))
		cfg2.SubnetCidrs()[0] = "10.0.0.0/24"

		Expect(cfg1.SubnetCidrs()).To(Equal([]string{"192.168.0.0/24", "192.168.1.0/24"}))
		Expect(cfg1.InstanceClass()).To(Equal("burstable-micro"))
		Expect(cfg2.InstanceClass()).To(Equal("burstable-small"))
	})
})

var _ = Describe("sizing", func() {
	It("should list classes sorted", func() {
		classes := clcdk.InstanceClasses()
		Expect(classes).To(ContainElements("burstable-micro", "graviton-small", "general-large"))
		Expect(classes[0]).To(Equal("burstable-large"))
	})

	DescribeTable("concrete types", func(name, exp string) {
		itype, err := clcdk.LookupInstanceType(name)
		Expect(err).ToNot(HaveOccurred())
		Expect(*itype.ToString()).To(Equal(exp))
	},
		Entry("micro", "burstable-micro", "t2.micro"),
		Entry("t3", "burstable3-small", "t3.small"),
		Entry("graviton", "graviton-medium", "t4g.medium"),
		Entry("general", "general-xlarge", "m5.xlarge"),
	)

	It("should fail unknown classes", func() {
		_, err := clcdk.LookupInstanceType("huge")
		Expect(err).To(MatchError(clcdk.ErrConfiguration))
		Expect(err).To(MatchError(ContainSubstring("unknown instance class: huge")))
	})
})
