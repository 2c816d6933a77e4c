package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/streetmart/backend/internal/domain/identity"
	"github.com/streetmart/backend/internal/domain/shared"
	"github.com/streetmart/backend/internal/domain/trade"
	"github.com/streetmart/backend/internal/infrastructure/printing"
)

// ErrPrintingDisabled is returned for PDF slips when no renderer is configured
var ErrPrintingDisabled = shared.NewDomainError("PRINTING_DISABLED", "PDF printing is not enabled on this server")

// SlipService renders printable order slips for the order's parties
type SlipService struct {
	views    trade.OrderViewReader
	builder  *printing.SlipBuilder
	renderer printing.PDFRenderer
	logger   *zap.Logger
}

// NewSlipService creates a new SlipService. renderer may be nil, in which case
// only HTML slips are available.
func NewSlipService(views trade.OrderViewReader, builder *printing.SlipBuilder, renderer printing.PDFRenderer, logger *zap.Logger) *SlipService {
	return &SlipService{
		views:    views,
		builder:  builder,
		renderer: renderer,
		logger:   logger,
	}
}

// Render produces the slip for orderID in the requested format
func (s *SlipService) Render(ctx context.Context, actor *identity.Actor, orderID uuid.UUID, format SlipFormat) (*SlipResult, error) {
	if actor == nil {
		return nil, shared.ErrUnauthorized
	}
	if format == "" {
		format = SlipFormatHTML
	}
	if format != SlipFormatHTML && format != SlipFormatPDF {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unsupported slip format '%s'", format))
	}
	if format == SlipFormatPDF && s.renderer == nil {
		return nil, ErrPrintingDisabled
	}

	view, err := s.views.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
		}
		s.logger.Error("Failed to load order for slip", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load order")
	}
	if !isSlipParty(view, actor) {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the order's vendor or supplier can view its slip")
	}

	html, err := s.builder.BuildHTML(view)
	if err != nil {
		s.logger.Error("Failed to build slip", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build order slip")
	}

	name := "order-" + printing.SlipNumber(view)
	if format == SlipFormatHTML {
		return &SlipResult{
			Filename:    name + ".html",
			ContentType: "text/html; charset=utf-8",
			Body:        []byte(html),
		}, nil
	}

	res, err := s.renderer.Render(ctx, &printing.RenderRequest{HTML: html, Title: name})
	if err != nil {
		s.logger.Error("Failed to render slip PDF", zap.String("order_id", orderID.String()), zap.Error(err))
		var renderErr *printing.RenderError
		if errors.As(err, &renderErr) && renderErr.Code == printing.ErrCodeRenderTimeout {
			return nil, shared.NewDomainError("RENDER_TIMEOUT", "Rendering the order slip timed out")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to render order slip")
	}

	s.logger.Debug("Slip rendered",
		zap.String("order_id", orderID.String()),
		zap.Duration("render_duration", res.RenderDuration),
		zap.Int("bytes", len(res.PDFData)),
	)
	return &SlipResult{
		Filename:    name + ".pdf",
		ContentType: "application/pdf",
		Body:        res.PDFData,
	}, nil
}

func isSlipParty(v *trade.OrderView, actor *identity.Actor) bool {
	switch actor.Role {
	case identity.RoleVendor:
		return actor.UserID == v.VendorID
	case identity.RoleSupplier:
		return actor.UserID == v.SupplierID
	}
	return false
}
