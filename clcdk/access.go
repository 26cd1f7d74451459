package clcdk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/jsii-runtime-go"
)

// Protocols accepted in an ingress rule. ProtocolAll ignores the port range.
const (
	ProtocolTCP = "tcp"
	ProtocolUDP = "udp"
	ProtocolAll = "-1"
)

// anyIPv4 is the destination of the default egress rule and the default route.
const anyIPv4 = "0.0.0.0/0"

// IngressRule allows inbound traffic from a source range.
type IngressRule struct {
	Protocol    string `validate:"oneof=tcp udp -1"`
	FromPort    int    `validate:"gte=0,lte=65535"`
	ToPort      int    `validate:"gte=0,lte=65535,gtefield=FromPort"`
	SourceCidr  string `validate:"cidrv4"`
	Description string
}

// TCP returns a rule allowing tcp traffic to a single port.
func TCP(port int, source, desc string) IngressRule {
	return IngressRule{Protocol: ProtocolTCP, FromPort: port, ToPort: port, SourceCidr: source, Description: desc}
}

// ParseIngressRule parses the "<protocol>:<port>[-<port>]:<cidr>" notation. For example:
// "tcp:22:0.0.0.0/0" or "udp:8000-8100:10.0.0.0/8". The "-1" protocol takes no ports: "-1::10.0.0.0/8".
func ParseIngressRule(s string) (r IngressRule, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 { //nolint:gomnd
		return r, fmt.Errorf("expected <protocol>:<ports>:<cidr>, got: %q", s)
	}

	r.Protocol, r.SourceCidr = parts[0], parts[2]
	switch {
	case r.Protocol == ProtocolAll && parts[1] == "":
		return r, nil
	case r.Protocol == ProtocolAll:
		return r, fmt.Errorf("protocol %s takes no ports, got: %q", ProtocolAll, parts[1])
	case parts[1] == "":
		return r, fmt.Errorf("protocol %s requires a port or port range", r.Protocol)
	}

	from, to, isRange := strings.Cut(parts[1], "-")
	if r.FromPort, err = strconv.Atoi(from); err != nil {
		return r, fmt.Errorf("failed to parse from port: %w", err)
	}

	r.ToPort = r.FromPort
	if isRange {
		if r.ToPort, err = strconv.Atoi(to); err != nil {
			return r, fmt.Errorf("failed to parse to port: %w", err)
		}
	}

	return r, nil
}

// UnmarshalText allows rules to be read from the environment.
func (r *IngressRule) UnmarshalText(text []byte) (err error) {
	*r, err = ParseIngressRule(string(text))

	return err
}

func (r IngressRule) String() string {
	if r.Protocol == ProtocolAll {
		return r.Protocol + "::" + r.SourceCidr
	}

	if r.FromPort == r.ToPort {
		return fmt.Sprintf("%s:%d:%s", r.Protocol, r.FromPort, r.SourceCidr)
	}

	return fmt.Sprintf("%s:%d-%d:%s", r.Protocol, r.FromPort, r.ToPort, r.SourceCidr)
}

// cfnIngress turns the rule into the raw ingress property.
func (r IngressRule) cfnIngress() *awsec2.CfnSecurityGroup_IngressProperty {
	prop := &awsec2.CfnSecurityGroup_IngressProperty{
		IpProtocol: jsii.String(r.Protocol),
		CidrIp:     jsii.String(r.SourceCidr),
	}

	if r.Description != "" {
		prop.Description = jsii.String(r.Description)
	}

	if r.Protocol != ProtocolAll {
		prop.FromPort = jsii.Number(r.FromPort)
		prop.ToPort = jsii.Number(r.ToPort)
	}

	return prop
}

// port turns the rule into the connection description of the higher level security group.
func (r IngressRule) port() awsec2.Port {
	switch {
	case r.Protocol == ProtocolAll:
		return awsec2.Port_AllTraffic()
	case r.Protocol == ProtocolUDP && r.FromPort == r.ToPort:
		return awsec2.Port_Udp(jsii.Number(r.FromPort))
	case r.Protocol == ProtocolUDP:
		return awsec2.Port_UdpRange(jsii.Number(r.FromPort), jsii.Number(r.ToPort))
	case r.FromPort == r.ToPort:
		return awsec2.Port_Tcp(jsii.Number(r.FromPort))
	default:
		return awsec2.Port_TcpRange(jsii.Number(r.FromPort), jsii.Number(r.ToPort))
	}
}
