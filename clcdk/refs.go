package clcdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type tokenRef struct {
	token *string
}

func (r tokenRef) ImportValue() *string {
	return r.token
}

// StrongRef represents a value that can be imported in another stack.
type StrongRef interface {
	// ImportValue will use the ref value through the use of Fn:ImportValue
	ImportValue() *string
}

// ExportValue uses the CDK's native method on the stack to export any 'v' that
// is a construct property.
func ExportValue(scope constructs.Construct, v any) StrongRef {
	return tokenRef{awscdk.Stack_Of(scope).ExportValue(v, nil)}
}

// TopologyRefs are the exported identifiers of a topology, other stacks can place resources in it.
type TopologyRefs struct {
	VpcID           StrongRef
	SubnetIDs       []StrongRef
	SecurityGroupID StrongRef
	InstanceID      StrongRef
}

// ExportTopology exports the identifiers of the topology's main nodes and outputs them for the cli.
func ExportTopology(scope constructs.Construct, topo *Topology) TopologyRefs {
	refs := TopologyRefs{
		VpcID:           ExportValue(scope, topo.Network.VpcID()),
		SecurityGroupID: ExportValue(scope, topo.SecurityGroup.SecurityGroupID()),
		InstanceID:      ExportValue(scope, topo.Instance.InstanceID()),
	}

	for _, id := range topo.Network.SubnetIDs() {
		refs.SubnetIDs = append(refs.SubnetIDs, ExportValue(scope, id))
	}

	awscdk.NewCfnOutput(scope, jsii.String("InstanceId"), &awscdk.CfnOutputProps{
		Value:       topo.Instance.InstanceID(),
		Description: jsii.String("id of the compute instance"),
	})

	return refs
}
