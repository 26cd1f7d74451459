package cltopo

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/cxapi"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/cltopo/clbuildinfo"
	"github.com/crewlinker/cltopo/clcdk"
	"github.com/crewlinker/cltopo/clgraph"
	"github.com/crewlinker/cltopo/clzap"
	"go.uber.org/zap"
)

// Result of a synthesis.
type Result struct {
	Stack     awscdk.Stack
	Topology  *clcdk.Topology
	Refs      clcdk.TopologyRefs
	Graph     *clgraph.Graph
	Directory string
}

// VersionTag is the tag that carries the version of the binary that declared the topology.
const VersionTag = "cltopo:version"

// Synthesizer declares the topology into a cdk app and hands it to the cdk for synthesis.
type Synthesizer struct {
	cfg  Config
	logs *zap.Logger
	deps clcdk.Deps
	info *clbuildinfo.Info
}

// New inits the synthesizer. The zone lister and build info may be nil.
func New(
	cfg Config,
	logs *zap.Logger,
	images clcdk.ImageCatalog,
	zones clcdk.ZoneLister,
	info *clbuildinfo.Info,
) *Synthesizer {
	return &Synthesizer{
		cfg:  cfg,
		logs: logs,
		deps: clcdk.Deps{Images: images, Zones: zones, Logs: logs},
		info: info,
	}
}

// Declare builds the topology into a new stack of 'app' without synthesizing it.
func (s *Synthesizer) Declare(ctx context.Context, app awscdk.App) (awscdk.Stack, *clcdk.Topology, error) {
	conv, err := clcdk.ConventionsFromScope(app)
	if err != nil {
		return nil, nil, err
	}

	strat, err := clcdk.StrategyByName(s.cfg.Strategy)
	if err != nil {
		return nil, nil, err
	}

	stack := clcdk.NewTopologyStack(app, conv)
	if s.info != nil {
		awscdk.Tags_Of(stack).Add(jsii.String(VersionTag), jsii.String(s.info.Version()), nil)
	}

	topo, err := clcdk.Build(ctx, stack, strat, s.cfg.Topology(conv.Qualifier(), conv.Region()), s.deps)
	if err != nil {
		return nil, nil, err
	}

	return stack, topo, nil
}

// Synth declares the topology, synthesizes the app and checks the resulting graph for dangling
// references and cycles.
func (s *Synthesizer) Synth(ctx context.Context, app awscdk.App) (*Result, error) {
	ctx = clzap.WithLogger(ctx, s.logs)

	stack, topo, err := s.Declare(ctx, app)
	if err != nil {
		return nil, err
	}

	res := &Result{Stack: stack, Topology: topo, Refs: clcdk.ExportTopology(stack, topo)}
	name := *stack.StackName()

	asm, err := synth(app)
	if err != nil {
		return nil, clcdk.ProvisioningErr(name, err)
	}

	res.Directory = *asm.Directory()

	tmpl, ok := asm.GetStackArtifact(stack.ArtifactId()).Template().(map[string]any)
	if !ok {
		return nil, clcdk.ProvisioningErr(name, fmt.Errorf("template is not an object"))
	}

	if res.Graph, err = clgraph.FromTemplate(tmpl); err != nil {
		return nil, clcdk.ProvisioningErr(name, err)
	}

	if err := res.Graph.Check(); err != nil {
		return nil, &clcdk.Error{
			Kind: clcdk.ErrReference, Name: name, Constraint: "synthesized graph is inconsistent", Err: err,
		}
	}

	s.logs.Info("synthesized topology",
		zap.String("stack", name),
		zap.String("directory", res.Directory),
		zap.Int("resources", res.Graph.Len()))

	if s.cfg.GraphOutput != "" {
		if err := s.writeGraph(res.Graph); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// writeGraph renders the graph to the configured output file.
func (s *Synthesizer) writeGraph(g *clgraph.Graph) error {
	var buf bytes.Buffer
	if err := g.Render(&buf, s.cfg.GraphFormat); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}

	if err := os.WriteFile(s.cfg.GraphOutput, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}

	s.logs.Info("wrote graph",
		zap.String("path", s.cfg.GraphOutput),
		zap.String("format", string(s.cfg.GraphFormat)))

	return nil
}

// synth runs the cdk synthesis, the cdk reports rejections by panicking.
func synth(app awscdk.App) (asm cxapi.CloudAssembly, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()

	return app.Synth(nil), nil
}
