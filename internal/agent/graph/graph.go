// Package graph composes the per-turn workflow as an Eino graph:
// triage branches to the catalog/order step or terminates; the catalog step
// always hands off to continuation, which pauses the session for the next
// user turn.
package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/sliceline-core/server/internal/agent/catalog"
	"github.com/sliceline-core/server/internal/agent/graph/nodes"
	"github.com/sliceline-core/server/internal/agent/graph/observers"
	"github.com/sliceline-core/server/internal/agent/model"
	"github.com/sliceline-core/server/internal/agent/order"
	errx "github.com/sliceline-core/server/internal/core/error"
	logx "github.com/sliceline-core/server/pkg/logger"
)

// A single turn visits at most triage, search and continuation plus the
// terminal bookkeeping; anything beyond this indicates a wiring bug.
const maxRunSteps = 8

// Runner executes one workflow turn over a session state.
type Runner interface {
	RunTurn(ctx context.Context, state *model.SessionState) (*model.SessionState, error)
}

// Config holds everything needed to compose the workflow graph.
type Config struct {
	Catalog     *catalog.Service
	Recommender *catalog.Recommender
	Orders      *order.Service
	Classifier  model.Classifier
	Search      model.SearchConfig
}

type workflowBuilder struct {
	config *Config
	graph  *compose.Graph[*model.SessionState, *model.SessionState]
}

type workflowRunner struct {
	runnable compose.Runnable[*model.SessionState, *model.SessionState]
}

func (r *workflowRunner) RunTurn(ctx context.Context, state *model.SessionState) (*model.SessionState, error) {
	return r.runnable.Invoke(ctx, state, compose.WithCallbacks(observers.NewAllCallbacks()))
}

// BuildWorkflow validates the configuration, constructs the graph and
// compiles it into a Runner. Any misconfiguration here is fatal: the workflow
// must not be built from a malformed definition.
func BuildWorkflow(ctx context.Context, config *Config) (Runner, error) {
	if config == nil {
		return nil, errx.NewGraphConfig(fmt.Errorf("workflow config is nil"))
	}
	if config.Catalog == nil || config.Recommender == nil || config.Orders == nil {
		return nil, errx.NewGraphConfig(fmt.Errorf("catalog, recommender and orders are required"))
	}

	builder := &workflowBuilder{
		config: config,
		graph: compose.NewGraph[*model.SessionState, *model.SessionState](
			compose.WithGenLocalState(func(ctx context.Context) *model.TurnTrace {
				return &model.TurnTrace{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph.
func (b *workflowBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeTriage,
		nodes.NewTriageNode(b.config.Classifier),
		compose.WithStatePreHandler(nodes.NewTurnStartHandler()),
		compose.WithStatePostHandler(nodes.NewStepTraceHandler(nodes.NodeTriage)),
	)

	b.graph.AddLambdaNode(nodes.NodeSearch,
		nodes.NewSearchNode(b.config.Catalog, b.config.Recommender, b.config.Orders, b.config.Search),
		compose.WithStatePostHandler(nodes.NewStepTraceHandler(nodes.NodeSearch)),
	)

	b.graph.AddLambdaNode(nodes.NodeContinuation,
		nodes.NewContinuationNode(b.config.Orders, b.config.Classifier),
		compose.WithStatePostHandler(nodes.NewStepTraceHandler(nodes.NodeContinuation)),
	)
}

// addEdges creates the unconditional flow connections.
func (b *workflowBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeTriage},
		{nodes.NodeSearch, nodes.NodeContinuation},
		{nodes.NodeContinuation, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates the conditional routing out of triage.
func (b *workflowBuilder) addBranches() error {
	triageBranch := compose.NewGraphBranch(
		nodes.NewTriageCondition(),
		map[string]bool{
			nodes.NodeSearch: true,
			compose.END:      true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeTriage, triageBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding triage branch")
		return errx.NewGraphConfig(fmt.Errorf("error adding triage branch: %w", err))
	}

	return nil
}

// compile finalizes and compiles the graph.
func (b *workflowBuilder) compile(ctx context.Context) (Runner, error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxRunSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling workflow graph")
		return nil, errx.NewGraphConfig(fmt.Errorf("error compiling workflow graph: %w", err))
	}

	logx.Debug().Msg("Workflow graph compiled successfully")
	return &workflowRunner{runnable: runnable}, nil
}
