package marketdata

import (
	"time"

	"github.com/wonny/sectorpulse/internal/contracts"
)

// WeekdayCalendar implements contracts.TradingCalendar: Monday through
// Friday, minus an explicit holiday set.
type WeekdayCalendar struct {
	holidays map[string]bool // YYYYMMDD
}

// NewWeekdayCalendar creates a calendar with the given holidays.
func NewWeekdayCalendar(holidays []string) *WeekdayCalendar {
	set := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		set[h] = true
	}
	return &WeekdayCalendar{holidays: set}
}

// IsTradingDay reports whether the YYYYMMDD date is a weekday outside the
// holiday set. Unparseable dates are not trading days.
func (c *WeekdayCalendar) IsTradingDay(date string) bool {
	day, err := time.Parse(contracts.DateFormat, date)
	if err != nil {
		return false
	}
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !c.holidays[date]
}
