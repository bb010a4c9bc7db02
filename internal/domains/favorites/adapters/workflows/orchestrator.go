package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	favoriteapp "github.com/AndyCHK/giphy-api-app/internal/domains/favorites/application"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/ports"
	favoriteworkflows "github.com/AndyCHK/giphy-api-app/internal/durable/temporal/workflows/favorites"
	favoriteactivities "github.com/AndyCHK/giphy-api-app/internal/platform/temporal/activities/favorites"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalFavoriteWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineFavoriteWorkflows)(nil)
)

// TemporalFavoriteWorkflows starts save-favorite workflows on a Temporal cluster.
type TemporalFavoriteWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalFavoriteWorkflows(c client.Client) *TemporalFavoriteWorkflows {
	return &TemporalFavoriteWorkflows{client: c, taskQueue: favoriteworkflows.SaveFavoriteTaskQueue}
}

// AddFavorite runs the workflow and waits for the stored favorite. Concurrent
// saves of the same (user, gif) share one workflow execution.
func (o *TemporalFavoriteWorkflows) AddFavorite(ctx context.Context, input ports.AddFavoriteInput) (*domain.Favorite, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal favorite workflows not configured")
	}
	workflowID := buildSaveFavoriteWorkflowID(input)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		favoriteworkflows.SaveFavoriteWorkflow,
		favoriteworkflows.SaveFavoriteWorkflowInput{Command: input, TraceID: workflowTraceComponent(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var favorite domain.Favorite
	if err := run.Get(ctx, &favorite); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &favorite, nil
}

// translateWorkflowError restores the port sentinels for activity failures
// the caller can act on.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case favoriteactivities.ErrTypeGifNotFound:
		return fmt.Errorf("%w: %w", ports.ErrGifNotFound, err)
	case favoriteactivities.ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", favoriteapp.ErrInvalidInput, appErr.Message())
	}
	return err
}

// InlineFavoriteWorkflows runs the service directly, for tests and when
// Temporal is unavailable.
type InlineFavoriteWorkflows struct {
	service ports.Service
}

func NewInlineFavoriteWorkflows(service ports.Service) *InlineFavoriteWorkflows {
	return &InlineFavoriteWorkflows{service: service}
}

func (o *InlineFavoriteWorkflows) AddFavorite(ctx context.Context, input ports.AddFavoriteInput) (*domain.Favorite, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline favorite workflows not configured")
	}
	return o.service.Add(ctx, input)
}

func buildSaveFavoriteWorkflowID(input ports.AddFavoriteInput) string {
	return fmt.Sprintf("save-favorite-%s-%s", input.UserID, input.GifID)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
