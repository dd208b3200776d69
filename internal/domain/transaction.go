package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction types. The ledger is append-only: no update or delete path exists.
const (
	TypeBuy  = "BUY"
	TypeSell = "SELL"
)

// Transaction is one BUY or SELL row in a user's ledger.
type Transaction struct {
	TxID            uuid.UUID `gorm:"column:tx_id;type:uuid;primaryKey" json:"tx_id"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	StockSymbol     string    `gorm:"column:stock_symbol;type:varchar(12);not null" json:"stock_symbol"`
	TransactionType string    `gorm:"column:transaction_type;type:varchar(4);not null" json:"transaction_type"`
	Quantity        int       `gorm:"column:quantity;not null" json:"quantity"`
	Price           float64   `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	TransactionDate time.Time `gorm:"column:transaction_date;autoCreateTime" json:"transaction_date"`
}

func (Transaction) TableName() string {
	return "Transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TxID == uuid.Nil {
		t.TxID = uuid.New()
	}
	return nil
}
