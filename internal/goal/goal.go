package goal

import (
	"time"

	"github.com/google/uuid"

	"github.com/autentke/autentke/internal/apperr"
)

var ErrNotFound = apperr.NotFound("goal not found")

// MonthLayout is the layout of a goal's month key.
const MonthLayout = "2006-01"

// Goal is the revenue target for one calendar month. At most one goal exists
// per month.
type Goal struct {
	ID        uuid.UUID `json:"id"`
	Month     string    `json:"month"`  // YYYY-MM
	Target    int64     `json:"target"` // cents
	UpdatedAt time.Time `json:"updated_at"`
}

// MonthKey formats t as a goal month key.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}
