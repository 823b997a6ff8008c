package services

import (
	"context"
	"sort"
	"strings"

	"quarhire/internal/domain"
	"quarhire/internal/domain/models"
	"quarhire/internal/utils"

	"github.com/shopspring/decimal"
)

type FinanceReportFilter struct {
	From string
	To   string
}

type ReportsService struct {
	Finance FinanceStore
}

// FinanceBucket aggregates bookings sharing one key (month or vehicle type).
type FinanceBucket struct {
	Key         string          `json:"key"`
	Bookings    int             `json:"bookings"`
	Revenue     decimal.Decimal `json:"revenue"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type FinanceReport struct {
	From           string          `json:"from,omitempty"`
	To             string          `json:"to,omitempty"`
	Currency       string          `json:"currency"`
	TotalBookings  int             `json:"totalBookings"`
	CountsByStatus map[string]int  `json:"countsByStatus"`
	Revenue        decimal.Decimal `json:"revenue"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	CancelledValue decimal.Decimal `json:"cancelledValue"`
	Monthly        []FinanceBucket `json:"monthly"`
	ByVehicle      []FinanceBucket `json:"byVehicle"`
}

// GetFinanceReport sums booking value by status. Revenue counts bookings whose
// payment is recorded (paid, confirmed, completed); outstanding is pending.
func (s ReportsService) GetFinanceReport(ctx context.Context, f FinanceReportFilter) (FinanceReport, error) {
	from, to := strings.TrimSpace(f.From), strings.TrimSpace(f.To)
	var fe fieldErrors
	fe.invalidIf(from != "" && !validDate(from), "from")
	fe.invalidIf(to != "" && !validDate(to), "to")
	if err := fe.err(); err != nil {
		return FinanceReport{}, err
	}
	if from != "" && to != "" && from > to {
		return FinanceReport{}, domain.ValidationError{Field: "from", Msg: "must not be after to"}
	}

	rows, err := s.Finance.ListBuckets(ctx, from, to)
	if err != nil {
		return FinanceReport{}, err
	}

	report := FinanceReport{
		From:           from,
		To:             to,
		Currency:       utils.DefaultCurrency,
		CountsByStatus: map[string]int{},
		Revenue:        decimal.Zero,
		Outstanding:    decimal.Zero,
		CancelledValue: decimal.Zero,
	}
	monthly := map[string]*FinanceBucket{}
	vehicles := map[string]*FinanceBucket{}

	for _, r := range rows {
		report.TotalBookings += r.Count
		report.CountsByStatus[string(r.Status)] += r.Count

		var revenue, outstanding decimal.Decimal
		switch {
		case r.Status.Settled():
			revenue = r.Total
			report.Revenue = report.Revenue.Add(r.Total)
		case r.Status == models.StatusPending:
			outstanding = r.Total
			report.Outstanding = report.Outstanding.Add(r.Total)
		case r.Status == models.StatusCancelled:
			report.CancelledValue = report.CancelledValue.Add(r.Total)
		}

		addBucket(monthly, utils.FirstNonEmpty(r.Month, "unknown"), r.Count, revenue, outstanding)
		addBucket(vehicles, utils.FirstNonEmpty(r.VehicleType, "unknown"), r.Count, revenue, outstanding)
	}

	report.Monthly = sortedBuckets(monthly)
	report.ByVehicle = sortedBuckets(vehicles)
	return report, nil
}

func addBucket(m map[string]*FinanceBucket, key string, count int, revenue, outstanding decimal.Decimal) {
	b, ok := m[key]
	if !ok {
		b = &FinanceBucket{Key: key, Revenue: decimal.Zero, Outstanding: decimal.Zero}
		m[key] = b
	}
	b.Bookings += count
	b.Revenue = b.Revenue.Add(revenue)
	b.Outstanding = b.Outstanding.Add(outstanding)
}

func sortedBuckets(m map[string]*FinanceBucket) []FinanceBucket {
	out := make([]FinanceBucket, 0, len(m))
	for _, b := range m {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
