package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/autentke/autentke/internal/apperr"
)

var ErrNotFound = apperr.NotFound("expense not found")

// Well-known categories. Any other label is accepted as typed.
const (
	CategoryOperational = "Operacional"
	CategoryMarketing   = "Marketing"
)

// Expense is a fixed cost of running the shop, subtracted from gross profit.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"` // cents
	Category    string    `json:"category"`
	SpentAt     time.Time `json:"spent_at"`
	CreatedAt   time.Time `json:"created_at"`
}
