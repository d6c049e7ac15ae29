package mock

import (
	"context"

	"github.com/fwojciec/sitescan"
)

var _ sitescan.RunService = (*RunService)(nil)

// RunService is a mock implementation of sitescan.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *sitescan.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*sitescan.Run, error)
	FindRunsFn    func(ctx context.Context, filter sitescan.RunFilter) ([]*sitescan.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *sitescan.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*sitescan.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter sitescan.RunFilter) ([]*sitescan.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
