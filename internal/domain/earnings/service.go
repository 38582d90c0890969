package earnings

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/appointment"
	"github.com/clinicore/clinicore/internal/platform/clock"
)

// LedgerReader yields a doctor's full ledger. Satisfied by the
// appointment service.
type LedgerReader interface {
	AllForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*appointment.Appointment, error)
}

type Service struct {
	ledger  LedgerReader
	clk     clock.Clock
	fee     int64
	daySpan int
}

func NewService(ledger LedgerReader, clk clock.Clock, fee int64, daySpan int) *Service {
	if daySpan <= 0 {
		daySpan = 7
	}
	return &Service{ledger: ledger, clk: clk, fee: fee, daySpan: daySpan}
}

// Report folds the doctor's ledger into the daily, monthly and yearly
// series plus headline totals. Cancelled entries stay in the fold; the
// ledger is append-only and the rollups mirror its size.
func (s *Service) Report(ctx context.Context, doctorID uuid.UUID) (*Report, error) {
	items, err := s.ledger.AllForDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	return &Report{
		Daily:   s.daily(items, now),
		Monthly: s.monthly(items),
		Yearly:  s.yearly(items),
		Summary: s.summary(items, now),
	}, nil
}

// daily covers the trailing span of days ending today, oldest first.
// Days without bookings appear with zero counts.
func (s *Service) daily(items []*appointment.Appointment, now time.Time) []DailyBucket {
	byDate := make(map[string]int)
	for _, a := range items {
		byDate[a.Date]++
	}

	buckets := make([]DailyBucket, 0, s.daySpan)
	for i := s.daySpan - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		count := byDate[date]
		buckets = append(buckets, DailyBucket{
			Date:    date,
			Count:   count,
			Revenue: int64(count) * s.fee,
		})
	}
	return buckets
}

// monthly buckets by month-of-year across the whole ledger. Always
// twelve buckets, January through December.
func (s *Service) monthly(items []*appointment.Appointment) []MonthlyBucket {
	counts := make([]int, 12)
	for _, a := range items {
		t, err := time.Parse("2006-01-02", a.Date)
		if err != nil {
			continue
		}
		counts[int(t.Month())-1]++
	}

	buckets := make([]MonthlyBucket, 12)
	for m := 0; m < 12; m++ {
		buckets[m] = MonthlyBucket{
			Month:   m + 1,
			Label:   time.Month(m + 1).String(),
			Count:   counts[m],
			Revenue: int64(counts[m]) * s.fee,
		}
	}
	return buckets
}

// yearly has one bucket per distinct year with data, ascending.
func (s *Service) yearly(items []*appointment.Appointment) []YearlyBucket {
	byYear := make(map[int]int)
	for _, a := range items {
		t, err := time.Parse("2006-01-02", a.Date)
		if err != nil {
			continue
		}
		byYear[t.Year()]++
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	buckets := make([]YearlyBucket, 0, len(years))
	for _, y := range years {
		buckets = append(buckets, YearlyBucket{
			Year:    y,
			Count:   byYear[y],
			Revenue: int64(byYear[y]) * s.fee,
		})
	}
	return buckets
}

func (s *Service) summary(items []*appointment.Appointment, now time.Time) Summary {
	weekStart := now.AddDate(0, 0, -int(now.Weekday())).Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	today := now.Format("2006-01-02")

	sum := Summary{TotalAppointments: len(items)}
	for _, a := range items {
		if a.Date > today {
			continue
		}
		if a.Date >= weekStart {
			sum.WeekToDate++
		}
		if a.Date >= monthStart {
			sum.MonthToDate++
		}
		if a.Date >= yearStart {
			sum.YearToDate++
		}
	}
	sum.TotalRevenue = int64(len(items)) * s.fee
	return sum
}
