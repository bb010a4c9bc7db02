package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/domain"
	"github.com/AndyCHK/giphy-api-app/internal/domains/interactions/ports"
)

type stubService struct {
	err error
}

func (s stubService) Record(_ context.Context, input ports.RecordInput) (*domain.Interaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Interaction{Service: domain.ServiceName(input.Path), ResponseCode: input.ResponseCode}, nil
}

func (s stubService) Recent(context.Context, int) ([]*domain.Interaction, error) {
	return nil, s.err
}

func TestService_PassesThroughResults(t *testing.T) {
	svc := New(stubService{}, WithLogger(nil), WithTracer(nil), WithMeter(nil))

	interaction, err := svc.Record(context.Background(), ports.RecordInput{Path: "/api/gifs/search", ResponseCode: 200})
	require.NoError(t, err)
	require.Equal(t, "gifs/search", interaction.Service)
}

func TestService_ReturnsInnerError(t *testing.T) {
	boom := errors.New("db down")
	svc := New(stubService{err: boom})

	_, err := svc.Record(context.Background(), ports.RecordInput{Path: "/api/favorites"})
	require.ErrorIs(t, err, boom)
	_, err = svc.Recent(context.Background(), 10)
	require.ErrorIs(t, err, boom)
}
