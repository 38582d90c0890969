// Package earnings computes revenue rollups for a doctor by folding
// over the appointment ledger. Revenue is always count times the
// configured consultation fee; the per-appointment fee field is not
// consulted here.
package earnings

// DailyBucket is one day of the trailing daily series.
type DailyBucket struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	Revenue int64  `json:"revenue"`
}

// MonthlyBucket is one month-of-year bucket. The monthly series always
// carries exactly twelve buckets, January through December, regardless
// of where the data falls.
type MonthlyBucket struct {
	Month   int    `json:"month"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Revenue int64  `json:"revenue"`
}

// YearlyBucket is one calendar year with data.
type YearlyBucket struct {
	Year    int   `json:"year"`
	Count   int   `json:"count"`
	Revenue int64 `json:"revenue"`
}

// Summary holds the headline figures. The to-date counts compare each
// ledger entry's date against the start of the current week, month and
// year; weeks start on Sunday.
type Summary struct {
	TotalAppointments int   `json:"total_appointments"`
	TotalRevenue      int64 `json:"total_revenue"`
	WeekToDate        int   `json:"week_to_date"`
	MonthToDate       int   `json:"month_to_date"`
	YearToDate        int   `json:"year_to_date"`
}

// Report is the full earnings view for one doctor.
type Report struct {
	Daily   []DailyBucket   `json:"daily"`
	Monthly []MonthlyBucket `json:"monthly"`
	Yearly  []YearlyBucket  `json:"yearly"`
	Summary Summary         `json:"summary"`
}
