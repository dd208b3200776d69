package ledger

import (
	"context"
	"encoding/json"
	"strings"

	"ledger-backend/internal/domain"
	"ledger-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service encapsulates the transaction ledger: recording writes and
// computing derived views (holdings, summary).
type Service struct {
	DB    *gorm.DB
	locks keyedMutex
}

// RecordInput for the create-transaction request body.
type RecordInput struct {
	StockSymbol     string  `json:"stock_symbol"`
	TransactionType string  `json:"transaction_type"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
}

// Holding is a derived net position, never persisted.
type Holding struct {
	StockSymbol string `json:"stock_symbol"`
	NetQuantity int64  `json:"net_quantity"`
}

// Summary is the derived notional totals, never persisted.
type Summary struct {
	TotalBuy  float64 `json:"total_buy"`
	TotalSell float64 `json:"total_sell"`
}

const eventRecorded = "RECORDED"

// Record validates the input and appends one transaction to the caller's
// ledger. SELLs are admitted only if the committed net quantity covers the
// requested amount; the check and the insert run inside one DB transaction,
// serialized per (user, symbol), so concurrent SELLs cannot both pass
// against the same snapshot. A LedgerEvent audit row is written atomically
// with the transaction.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, input RecordInput) (*domain.Transaction, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input.StockSymbol))
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	if !validation.IsValidSymbol(symbol) {
		return nil, ErrInvalidSymbol
	}
	txType := strings.ToUpper(strings.TrimSpace(input.TransactionType))
	if txType != domain.TypeBuy && txType != domain.TypeSell {
		return nil, ErrInvalidType
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	unlock := s.locks.lock(userID.String() + "|" + symbol)
	defer unlock()

	record := domain.Transaction{
		UserID:          userID,
		StockSymbol:     symbol,
		TransactionType: txType,
		Quantity:        input.Quantity,
		Price:           input.Price,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		held, err := netQuantity(tx, userID, symbol)
		if err != nil {
			return err
		}
		if txType == domain.TypeSell && int64(input.Quantity) > held {
			return ErrInsufficientHoldings
		}

		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		netAfter := held + int64(input.Quantity)
		if txType == domain.TypeSell {
			netAfter = held - int64(input.Quantity)
		}
		eventData, _ := json.Marshal(map[string]interface{}{
			"stock_symbol":       symbol,
			"transaction_type":   txType,
			"quantity":           input.Quantity,
			"price":              input.Price,
			"net_quantity_after": netAfter,
		})
		return tx.Create(&domain.LedgerEvent{
			TxID:      record.TxID,
			UserID:    userID,
			EventType: eventRecorded,
			EventData: datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns the caller's transactions, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	txs := []domain.Transaction{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_date DESC").
		Find(&txs).Error
	return txs, err
}

// Holdings derives the net position per symbol for one user, filtered to
// strictly positive quantities. Zero positions disappear from the view.
func (s *Service) Holdings(ctx context.Context, userID uuid.UUID) ([]Holding, error) {
	holdings := []Holding{}
	err := s.DB.WithContext(ctx).
		Model(&domain.Transaction{}).
		Select("stock_symbol, SUM(CASE WHEN transaction_type = 'BUY' THEN quantity ELSE -quantity END) AS net_quantity").
		Where("user_id = ?", userID).
		Group("stock_symbol").
		Having("SUM(CASE WHEN transaction_type = 'BUY' THEN quantity ELSE -quantity END) > 0").
		Order("stock_symbol").
		Scan(&holdings).Error
	return holdings, err
}

// Summary computes the aggregate notional bought and sold. A user with no
// rows of a type gets 0, not null.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	var summary Summary
	err := s.DB.WithContext(ctx).
		Model(&domain.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN transaction_type = 'BUY' THEN quantity * price ELSE 0 END), 0) AS total_buy, COALESCE(SUM(CASE WHEN transaction_type = 'SELL' THEN quantity * price ELSE 0 END), 0) AS total_sell").
		Where("user_id = ?", userID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// netQuantity computes the committed net position for (user, symbol).
func netQuantity(tx *gorm.DB, userID uuid.UUID, symbol string) (int64, error) {
	var net int64
	err := tx.Raw(
		`SELECT COALESCE(SUM(CASE WHEN transaction_type = 'BUY' THEN quantity ELSE -quantity END), 0) FROM "Transactions" WHERE user_id = ? AND stock_symbol = ?`,
		userID, symbol,
	).Scan(&net).Error
	return net, err
}
