package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetshop/backend/internal/domain/inventory"
)

// StockResponse is the outcome of a successful purchase or restock
type StockResponse struct {
	SweetID  uuid.UUID `json:"sweet_id"`
	Quantity int64     `json:"quantity"`
}

// StatsResponse is a single labeled aggregate derived from the ledger:
// "revenue" across all users for admins, "spent" for the caller otherwise.
type StatsResponse struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// PurchaseResponse is one ledger row in API shape
type PurchaseResponse struct {
	ID         uuid.UUID       `json:"id"`
	SweetID    uuid.UUID       `json:"sweet_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToPurchaseResponse converts a ledger record to its API shape
func ToPurchaseResponse(p *inventory.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:         p.ID,
		SweetID:    p.SweetID,
		Quantity:   p.Quantity,
		UnitPrice:  p.UnitPrice,
		TotalPrice: p.TotalPrice,
		CreatedAt:  p.CreatedAt,
	}
}
