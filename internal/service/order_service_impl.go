package service

import (
	"context"
	"time"

	"github.com/alexanderramin/ordersheet/internal/clipboard"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/order"
	"github.com/alexanderramin/ordersheet/internal/pricing"
)

type orderService struct {
	catalogs CatalogService
	table    *pricing.Table
	copier   Copier
	observer UseCaseObserver
}

// NewOrderService prices selections against the live catalog of catalogs.
func NewOrderService(
	catalogs CatalogService,
	table *pricing.Table,
	copier Copier,
	observers ...UseCaseObserver,
) OrderService {
	return &orderService{
		catalogs: catalogs,
		table:    table,
		copier:   copier,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *orderService) Generate(ctx context.Context, sel *domain.Selection) (o *order.Order, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"product": string(sel.Product)}
	defer func() {
		if o != nil {
			fields["total_count"] = o.TotalCount
			fields["final_price"] = o.FinalPrice
			fields["policy"] = o.Policy.Name
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-order",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	return order.Generate(sel, s.catalogs.Catalog(), s.table)
}

func (s *orderService) Preview(sel *domain.Selection) pricing.Quote {
	return order.Preview(sel, s.catalogs.Catalog(), s.table)
}

func (s *orderService) Copy(ctx context.Context, text string) (method clipboard.Method, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "copy-order",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"method": string(method), "bytes": len(text)},
		})
	}()
	return s.copier.Copy(text)
}

// Policies lists every policy of the table with the products bound to it,
// including policies no product uses.
func (s *orderService) Policies() []PolicyBinding {
	policies := s.table.Policies()
	out := make([]PolicyBinding, len(policies))
	for i, p := range policies {
		out[i] = PolicyBinding{Policy: p}
		for _, prod := range domain.Products {
			if s.table.BindingName(prod) == p.Name {
				out[i].Products = append(out[i].Products, prod)
			}
		}
	}
	return out
}
