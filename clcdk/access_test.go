package clcdk_test

import (
	"github.com/crewlinker/cltopo/clcdk"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ingress rules", func() {
	DescribeTable("parsing", func(s string, exp clcdk.IngressRule) {
		rule, err := clcdk.ParseIngressRule(s)
		Expect(err).ToNot(HaveOccurred())
		Expect(rule).To(Equal(exp))
		Expect(rule.String()).To(Equal(s))
	},
		Entry("ssh", "tcp:22:0.0.0.0/0", clcdk.IngressRule{
			Protocol: "tcp", FromPort: 22, ToPort: 22, SourceCidr: "0.0.0.0/0",
		}),
		Entry("udp range", "udp:8000-8100:10.0.0.0/8", clcdk.IngressRule{
			Protocol: "udp", FromPort: 8000, ToPort: 8100, SourceCidr: "10.0.0.0/8",
		}),
		Entry("all traffic", "-1::10.0.0.0/8", clcdk.IngressRule{
			Protocol: "-1", SourceCidr: "10.0.0.0/8",
		}),
	)

	DescribeTable("malformed", func(s, snippet string) {
		_, err := clcdk.ParseIngressRule(s)
		Expect(err).To(MatchError(ContainSubstring(snippet)))
	},
		Entry("no parts", "tcp", "expected <protocol>:<ports>:<cidr>"),
		Entry("bad port", "tcp:ssh:0.0.0.0/0", "from port"),
		Entry("bad range", "tcp:22-x:0.0.0.0/0", "to port"),
		Entry("tcp without ports", "tcp::0.0.0.0/0", "requires a port"),
		Entry("udp without ports", "udp::10.0.0.0/8", "requires a port"),
		Entry("all traffic with ports", "-1:22:10.0.0.0/8", "takes no ports"),
	)

	It("should fail to unmarshal a rule without ports", func() {
		var rule clcdk.IngressRule
		Expect(rule.UnmarshalText([]byte("tcp::0.0.0.0/0"))).To(MatchError(ContainSubstring("requires a port")))
	})

	It("should unmarshal text", func() {
		var rule clcdk.IngressRule
		Expect(rule.UnmarshalText([]byte("tcp:443:0.0.0.0/0"))).To(Succeed())
		Expect(rule).To(Equal(clcdk.TCP(443, "0.0.0.0/0", "")))
	})
})
