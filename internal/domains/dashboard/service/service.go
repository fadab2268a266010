// Package service computes the dashboard of the current property.
package service

import (
	"context"
	"fmt"

	"hotelops/infras/otel"
	"hotelops/internal/domains/dashboard/model"
	posService "hotelops/internal/domains/pos/service"
	saleModel "hotelops/internal/domains/sale/model"
	"hotelops/internal/workspace"
	"hotelops/shared/constant"

	"golang.org/x/sync/errgroup"
)

type Dashboard interface {
	Summary(ctx context.Context, ws *workspace.Workspace) (model.Summary, error)
}

type serviceImpl struct {
	pos  posService.POS
	otel otel.Otel
}

func New(pos posService.POS, ot otel.Otel) Dashboard {
	return &serviceImpl{
		pos:  pos,
		otel: ot,
	}
}

// Summary reloads rooms, bookings and completed sales of the current property and summarizes them.
func (s *serviceImpl) Summary(ctx context.Context, ws *workspace.Workspace) (res model.Summary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	property, err := ws.Property(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to resolve property: %w", err)
	}

	var sales []saleModel.Sale

	var g errgroup.Group

	g.Go(func() error {
		return ws.Properties.FetchRooms(ctx, property.ID)
	})

	g.Go(func() error {
		return ws.Bookings.FetchBookings(ctx, property.ID)
	})

	g.Go(func() error {
		var salesErr error
		sales, salesErr = s.pos.CompletedSales(ctx, property.ID)

		return salesErr //nolint:wrapcheck
	})

	if err = g.Wait(); err != nil {
		return res, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	return Summarize(ws.Properties.Snapshot().Rooms, ws.Bookings.Snapshot().Bookings, sales, ws.Now()), nil
}
