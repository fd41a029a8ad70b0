// Package export writes the sales report as a spreadsheet-friendly CSV file.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/autentke/autentke/internal/pricing"
	"github.com/autentke/autentke/internal/report"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=export
type HistorySource interface {
	History(ctx context.Context) (*report.History, error)
}

type Service struct {
	history HistorySource
}

func NewService(history HistorySource) *Service {
	return &Service{history: history}
}

var header = []string{
	"data", "produto", "coleção", "comprador", "contato", "pagamento",
	"canal", "campanha", "tipo", "desconto", "preço", "custo", "lucro",
}

// WriteCSV writes every sale, newest first, followed by a totals line.
// Fields are separated by ';' and amounts use a decimal comma.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	h, err := s.history.History(ctx)
	if err != nil {
		return fmt.Errorf("loading sales history: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, l := range h.Sales {
		row := []string{
			l.SoldAt.Format("02/01/2006"),
			l.Name,
			l.CollectionName,
			l.Buyer,
			l.BuyerContact,
			l.PaymentMethod,
			l.Channel,
			l.Campaign,
			l.Kind,
			strings.ReplaceAll(l.Discount.String(), ".", ","),
			amount(l.SalePrice),
			amount(l.UnitCost),
			amount(l.Profit),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing sale %s: %w", l.ID, err)
		}
	}

	totals := make([]string, len(header))
	totals[0] = "TOTAL"
	totals[10] = amount(h.Summary.Revenue)
	totals[12] = amount(h.Summary.GrossProfit)

	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}

	cw.Flush()

	return cw.Error()
}

// ExportFile writes the CSV into dir and returns its path.
func (s *Service) ExportFile(ctx context.Context, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(now))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := s.WriteCSV(ctx, f); err != nil {
		return "", err
	}

	return path, f.Close()
}

// Filename is the name a report generated at t is saved or served under.
func Filename(t time.Time) string {
	return fmt.Sprintf("vendas_%s.csv", t.Format("20060102"))
}

// Summary renders a short plain-text digest of the report, suitable for
// pasting in a chat message.
func Summary(h *report.History) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s - vendas\n", h.StoreName)
	fmt.Fprintf(&sb, "* Faturamento: R$ %s (%d vendas)\n", amount(h.Summary.Revenue), h.Summary.SoldCount)
	fmt.Fprintf(&sb, "* Lucro bruto: R$ %s\n", amount(h.Summary.GrossProfit))
	fmt.Fprintf(&sb, "* Despesas: R$ %s\n", amount(h.Summary.TotalExpenses))
	fmt.Fprintf(&sb, "* Lucro final: R$ %s\n", amount(h.Summary.NetProfit))
	fmt.Fprintf(&sb, "* Ticket médio: R$ %s\n", amount(h.Summary.AverageTicket))

	for _, c := range h.Channels {
		fmt.Fprintf(&sb, "  - %s: %d | R$ %s\n", c.Name, c.Count, amount(c.Amount))
	}

	return sb.String()
}

func amount(cents int64) string {
	return strings.ReplaceAll(pricing.FormatAmount(cents), ".", ",")
}
