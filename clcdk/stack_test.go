package clcdk_test

import (
	"context"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/cltopo/clcdk"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("stack", func() {
	var app awscdk.App

	BeforeEach(func() {
		app = awscdk.NewApp(nil)
	})

	It("should follow conventions", func() {
		conv := clcdk.NewConventions("my-cool_app", "eu-west-1")
		Expect(conv.StackName()).To(Equal("MyCoolAppTopology"))
		Expect(conv.BootstrapQualifier()).To(Equal("mycoolappt"))
		Expect(conv.Qualifier()).To(Equal("my-cool_app"))

		stack := clcdk.NewTopologyStack(app, conv)
		Expect(*stack.Region()).To(Equal("eu-west-1"))

		tmpl := assertions.Template_FromStack(stack, nil)
		Expect((*tmpl.ToJSON())["Description"]).To(Equal("my-cool_app (network topology, eu-west-1)"))
	})

	It("should read conventions from context", func() {
		app.Node().SetContext(jsii.String("app"), jsii.String("my-app"))
		app.Node().SetContext(jsii.String("region"), jsii.String("eu-west-1"))

		conv, err := clcdk.ConventionsFromScope(app)
		Expect(err).ToNot(HaveOccurred())
		Expect(conv.Qualifier()).To(Equal("my-app"))
		Expect(conv.Region()).To(Equal("eu-west-1"))
	})

	It("should fall back to the cli region", func() {
		GinkgoT().Setenv("CDK_DEFAULT_REGION", "us-east-1")
		app.Node().SetContext(jsii.String("app"), jsii.String("my-app"))

		conv, err := clcdk.ConventionsFromScope(app)
		Expect(err).ToNot(HaveOccurred())
		Expect(conv.Region()).To(Equal("us-east-1"))
	})

	It("should require the app name", func() {
		_, err := clcdk.ConventionsFromScope(app)
		Expect(err).To(MatchError(clcdk.ErrConfiguration))
	})

	It("should export the topology", func(ctx context.Context) {
		stack := clcdk.NewTopologyStack(app, clcdk.NewConventions("my-app", "us-east-1"))
		topo, err := clcdk.Build(ctx, stack, clcdk.Explicit{},
			clcdk.NewDefaultConfig("my-app", "us-east-1"), clcdk.Deps{Images: testCatalog})
		Expect(err).ToNot(HaveOccurred())

		refs := clcdk.ExportTopology(stack, topo)
		Expect(refs.SubnetIDs).To(HaveLen(1))
		Expect(refs.VpcID.ImportValue()).ToNot(BeNil())

		tmpl := assertions.Template_FromStack(stack, nil)
		tmpl.HasOutput(jsii.String("InstanceId"), map[string]any{
			"Description": "id of the compute instance",
		})
	})
})
