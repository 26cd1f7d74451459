//go:build mage

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crewlinker/cltopo/clcdk"
	"github.com/crewlinker/cltopo/clgraph"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/sourcegraph/conc/iter"
)

// Infra groups commands for infrastructure deployment.
type Infra mg.Namespace

// strategies that declare the topology.
var strategies = []string{"explicit", "composed"}

// Synth synthesizes the topology with both strategies and checks that the graphs are equivalent.
func (Infra) Synth() error {
	conv, err := conventions()
	if err != nil {
		return err
	}

	cdkctx, err := json.Marshal(map[string]string{"app": conv.Qualifier(), "region": conv.Region()})
	if err != nil {
		return fmt.Errorf("failed to encode context: %w", err)
	}

	version, err := determineBuildVersion()
	if err != nil {
		return fmt.Errorf("failed to determine version: %w", err)
	}

	graphs, err := iter.MapErr(strategies, func(strategy *string) (*clgraph.Graph, error) {
		outdir := filepath.Join("cdk.out", *strategy)

		if err := runIfNoErr(nil, map[string]string{
			"CLTOPO_STRATEGY":  *strategy,
			"CDK_OUTDIR":       outdir,
			"CDK_CONTEXT_JSON": string(cdkctx),
		}, "go", "run", "-ldflags", "-X 'main.Version="+version+"'", "./cmd/cltopo"); err != nil {
			return nil, fmt.Errorf("failed to synth %s: %w", *strategy, err)
		}

		data, err := os.ReadFile(filepath.Join(outdir, conv.StackName()+".template.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}

		return clgraph.FromJSON(data)
	})
	if err != nil {
		return err
	}

	if err := clgraph.Equivalent(graphs[0], graphs[1]); err != nil {
		return fmt.Errorf("strategies diverge: %w", err)
	}

	fmt.Fprintf(os.Stdout, "%s: %d resources, strategies are equivalent\n", conv.StackName(), graphs[0].Len())

	return nil
}

// Diff shows the changes that a deploy of the topology would make.
func (Infra) Diff() error {
	return cdk("diff")
}

// Deploy deploys the topology, after checking that the strategies agree.
func (Infra) Deploy() error {
	mg.Deps(Infra.Synth)

	return cdk("deploy", "--require-approval", "never")
}

// cdk runs a cdk command on the topology stack.
func cdk(cmd string, args ...string) error {
	conv, err := conventions()
	if err != nil {
		return err
	}

	return runIfNoErr(nil, nil, "npx", append([]string{
		"cdk", cmd,
		"--app", "go run ./cmd/cltopo",
		"-c", "app=" + conv.Qualifier(),
		"-c", "region=" + conv.Region(),
		conv.StackName(),
	}, args...)...)
}

// conventions reads the application name and region from the environment, the stack is named the same
// way the app names it.
func conventions() (clcdk.Conventions, error) {
	app, region := os.Getenv("CLTOPO_APP"), os.Getenv("AWS_REGION")
	if app == "" || region == "" {
		return nil, errors.New("CLTOPO_APP and AWS_REGION must be set, e.g: in .env")
	}

	return clcdk.NewConventions(app, region), nil
}

// determineBuildVersion provides the build version.
func determineBuildVersion() (string, error) {
	version := os.Getenv("BUILD_VERSION")
	if version != "" {
		return version, nil
	}

	sha, err := sh.Output("git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to run git: %w", err)
	}

	return fmt.Sprintf("v0.0.0-%s", sha[:7]), nil
}

// runIfNoErr will only run cmd with args if 'err' is nil, else it will return err. This allows us to
// make somewhat readable automation around scripts.
func runIfNoErr(err error, env map[string]string, cmd string, args ...string) error {
	if err != nil {
		return err
	}

	if err = sh.RunWith(env, cmd, args...); err != nil {
		return fmt.Errorf("failed to run: %w", err)
	}

	return nil
}
