package collection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autentke/autentke/internal/apperr"
	"github.com/autentke/autentke/internal/pricing"
)

var (
	ErrNotFound    = apperr.NotFound("collection not found")
	ErrHasProducts = apperr.Conflict("collection still has products")
)

// Collection is a purchased batch ("lote") whose freight and gift costs are
// shared by its pieces.
type Collection struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Pieces    int       `json:"pieces"`
	Freight   int64     `json:"freight"` // cents
	Extras    int64     `json:"extras"`  // cents, gifts and packaging sent with the batch
	CreatedAt time.Time `json:"created_at"`
}

// Rateio is the per-piece overhead share in cents.
func (c *Collection) Rateio() decimal.Decimal {
	return pricing.Rateio(c.Freight, c.Extras, c.Pieces)
}
