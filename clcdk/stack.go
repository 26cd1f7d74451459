package clcdk

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// NewTopologyStack creates the stack the topology is declared in. The region always comes from the
// conventions so images can be resolved for it. The account is left to the environment.
func NewTopologyStack(scope constructs.Construct, conv Conventions) awscdk.Stack {
	env := &awscdk.Environment{Region: jsii.String(conv.Region())}
	if account := os.Getenv("CDK_DEFAULT_ACCOUNT"); account != "" {
		env.Account = jsii.String(account)
	}

	return awscdk.NewStack(scope,
		jsii.String(conv.StackName()),
		&awscdk.StackProps{
			Env: env,
			Description: jsii.String(fmt.Sprintf("%s (network topology, %s)",
				conv.Qualifier(), conv.Region())),
			Synthesizer: awscdk.NewDefaultStackSynthesizer(&awscdk.DefaultStackSynthesizerProps{
				Qualifier: jsii.String(conv.BootstrapQualifier()),
			}),
		})
}

// ConventionsFromScope reads the application name and the optional region override from the context,
// e.g: `cdk synth -c app=myapp -c region=eu-west-1`. Without an override the region of the cdk cli's
// environment is used.
func ConventionsFromScope(s constructs.Construct) (Conventions, error) {
	name := tryGetCtx(s, "app")
	if name == "" {
		return nil, configErr("App", "application name not in context, pass -c app=<name>", nil)
	}

	region := tryGetCtx(s, "region")
	if region == "" {
		region = os.Getenv("CDK_DEFAULT_REGION")
	}

	if region == "" {
		return nil, configErr("App", "no region in context or CDK_DEFAULT_REGION", nil)
	}

	return NewConventions(name, region), nil
}

// tryGetCtx reads a contextual string by the provided 'name'.
func tryGetCtx(s constructs.Construct, name string) string {
	v, _ := s.Node().TryGetContext(jsii.String(name)).(string)

	return strings.TrimSpace(v)
}
