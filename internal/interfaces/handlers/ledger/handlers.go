package ledger

import (
	ledgersvc "ledger-backend/internal/application/ledger"
	"ledger-backend/internal/middleware"
	"ledger-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for ledger endpoints.
type Handlers struct {
	Service *ledgersvc.Service
}

// CreateTransaction POST /transactions — append one BUY/SELL for the caller.
func (h *Handlers) CreateTransaction(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var body ledgersvc.RecordInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	record, err := h.Service.Record(c.Context(), userID, body)
	if err != nil {
		switch err {
		case ledgersvc.ErrSymbolRequired, ledgersvc.ErrInvalidSymbol, ledgersvc.ErrInvalidType,
			ledgersvc.ErrInvalidQuantity, ledgersvc.ErrInvalidPrice, ledgersvc.ErrInsufficientHoldings:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	return response.SuccessCreated(c, "Transaction added", fiber.Map{"transaction": record})
}

// ListTransactions GET /transactions — caller's transactions, newest first.
func (h *Handlers) ListTransactions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	txs, err := h.Service.List(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Transactions fetched successfully", txs)
}

// Holdings GET /holdings — net quantity per symbol, positive only.
func (h *Handlers) Holdings(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	holdings, err := h.Service.Holdings(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Holdings fetched successfully", holdings)
}

// Summary GET /summary — aggregate notional bought and sold.
func (h *Handlers) Summary(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	summary, err := h.Service.Summary(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Summary fetched successfully", summary)
}
