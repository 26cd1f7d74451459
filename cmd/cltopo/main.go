// Package main is the cdk app that synthesizes the topology, e.g: `cdk synth --app "go run ./cmd/cltopo" -c app=myapp`.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/cltopo/claws"
	"github.com/crewlinker/cltopo/clbuildinfo"
	"github.com/crewlinker/cltopo/cltopo"
	"github.com/crewlinker/cltopo/clzap"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Version is set at build time.
var Version = clbuildinfo.DevVersion

func main() {
	code := run(context.Background())
	jsii.Close()
	os.Exit(code)
}

func run(ctx context.Context) int {
	var (
		synth *cltopo.Synthesizer
		logs  *zap.Logger
	)

	app := fx.New(
		clzap.Fx(),
		clzap.Prod(),
		clbuildinfo.Provide(Version),
		claws.Provide(),
		cltopo.Provide(),
		fx.Populate(&synth, &logs))
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)

		return 1
	}

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)

		return 1
	}

	defer func() { _ = app.Stop(ctx) }()

	res, err := synth.Synth(ctx, awscdk.NewApp(nil))
	if err != nil {
		logs.Error("failed to synthesize topology", zap.Error(err))

		return 1
	}

	logs.Info("done", zap.String("stack", *res.Stack.StackName()), zap.String("image_id", string(res.Topology.Image)))

	return 0
}
