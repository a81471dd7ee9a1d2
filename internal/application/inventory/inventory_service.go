package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sweetshop/backend/internal/domain/inventory"
	"github.com/sweetshop/backend/internal/domain/shared"
	"github.com/sweetshop/backend/internal/infrastructure/telemetry"
)

// Statistics labels returned by Stats
const (
	StatsLabelRevenue = "revenue"
	StatsLabelSpent   = "spent"
)

// InventoryService orchestrates the two mutating stock operations and the
// ledger aggregation. Purchase runs lock-validate-write-append inside one
// transaction scope; restock is a single atomic increment; stats are pure
// reads. Role checks happen at the HTTP boundary, not here - the service
// only uses the caller's role to pick the statistics scope.
type InventoryService struct {
	txScope      TransactionScope
	purchaseRepo inventory.PurchaseRepository
	logger       *zap.Logger
	metrics      *telemetry.ShopMetrics
}

// NewInventoryService creates a new InventoryService. purchaseRepo is the
// non-transactional ledger handle used for the read side; writes go
// through the scope.
func NewInventoryService(txScope TransactionScope, purchaseRepo inventory.PurchaseRepository, logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		txScope:      txScope,
		purchaseRepo: purchaseRepo,
		logger:       logger,
	}
}

// SetShopMetrics enables purchase and restock metrics recording
func (s *InventoryService) SetShopMetrics(metrics *telemetry.ShopMetrics) {
	s.metrics = metrics
}

// Purchase decrements a sweet's stock and appends a ledger row, atomically.
// The steps inside the scope:
//
//  1. lock the sweet row and read quantity + price
//  2. validate sufficiency (abort with INSUFFICIENT_STOCK carrying the
//     available quantity otherwise)
//  3. apply the decrement
//  4. append the ledger row with the price snapshotted under the lock
//
// Any error, including context cancellation, rolls the whole unit back:
// no decrement without a ledger row and no ledger row without a decrement.
func (s *InventoryService) Purchase(ctx context.Context, sweetID uuid.UUID, quantity int64, callerID uuid.UUID) (*StockResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "purchase")
	defer span.End()

	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	var result StockResponse
	var total decimal.Decimal
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		stock, err := repos.StockRepo().LockForUpdate(ctx, sweetID)
		if err != nil {
			return err
		}

		if stock.Quantity < quantity {
			return shared.NewInsufficientStockError(stock.Quantity)
		}

		newQuantity, err := repos.StockRepo().ApplyDelta(ctx, sweetID, -quantity)
		if err != nil {
			return err
		}

		purchase, err := inventory.NewPurchase(callerID, sweetID, quantity, stock.Price)
		if err != nil {
			return err
		}
		if err := repos.PurchaseRepo().Append(ctx, purchase); err != nil {
			return err
		}

		result = StockResponse{SweetID: sweetID, Quantity: newQuantity}
		total = purchase.TotalPrice
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		if s.metrics != nil {
			s.metrics.RecordPurchaseFailure(ctx, failureReason(err))
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPurchase(ctx, quantity, total)
	}

	s.logger.Info("purchase committed",
		zap.String("sweet_id", sweetID.String()),
		zap.String("user_id", callerID.String()),
		zap.Int64("quantity", quantity),
		zap.Int64("remaining", result.Quantity))

	return &result, nil
}

// Restock increments a sweet's stock. An increment cannot violate the
// non-negativity invariant, so no read-before-write is needed; the single
// UPDATE is atomic at the store level. Restock is not a financial event,
// so no ledger row is written.
func (s *InventoryService) Restock(ctx context.Context, sweetID uuid.UUID, quantity int64, callerID uuid.UUID) (*StockResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "restock")
	defer span.End()

	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}

	var result StockResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		newQuantity, err := repos.StockRepo().ApplyDelta(ctx, sweetID, quantity)
		if err != nil {
			return err
		}
		result = StockResponse{SweetID: sweetID, Quantity: newQuantity}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordRestock(ctx, quantity)
	}

	s.logger.Info("restock committed",
		zap.String("sweet_id", sweetID.String()),
		zap.String("user_id", callerID.String()),
		zap.Int64("quantity", quantity),
		zap.Int64("new_quantity", result.Quantity))

	return &result, nil
}

// Stats aggregates the ledger: total revenue across all users for
// privileged callers, the caller's own spend otherwise. An empty ledger
// yields zero, never an error.
func (s *InventoryService) Stats(ctx context.Context, callerID uuid.UUID, privileged bool) (*StatsResponse, error) {
	if privileged {
		total, err := s.purchaseRepo.SumTotal(ctx)
		if err != nil {
			return nil, err
		}
		return &StatsResponse{Label: StatsLabelRevenue, Value: total}, nil
	}

	total, err := s.purchaseRepo.SumTotalForUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{Label: StatsLabelSpent, Value: total}, nil
}

// failureReason maps an error to a low-cardinality metric label
func failureReason(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "INTERNAL"
}

// History returns the caller's ledger rows, newest first.
func (s *InventoryService) History(ctx context.Context, callerID uuid.UUID) ([]PurchaseResponse, error) {
	purchases, err := s.purchaseRepo.FindByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	responses := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseResponse(&purchases[i])
	}
	return responses, nil
}
