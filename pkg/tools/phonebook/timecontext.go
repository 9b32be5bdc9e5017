package phonebook

import (
	"strings"
	"time"
)

// TimeContext describes the current coverage window. It rides along with
// every directory result so the model can explain after-hours routing.
type TimeContext struct {
	CurrentTime     string `json:"current_time"`
	Day             string `json:"day"`
	IsWeekend       bool   `json:"is_weekend"`
	IsBusinessHours bool   `json:"is_business_hours"`
	IsAfterHours    bool   `json:"is_after_hours"`
}

// TimeContextAt classifies a moment. Business hours are 7am-5pm on weekdays.
func TimeContextAt(t time.Time) TimeContext {
	weekday := t.Weekday()
	isWeekend := weekday == time.Saturday || weekday == time.Sunday
	isBusinessHours := t.Hour() >= 7 && t.Hour() < 17 && !isWeekend

	return TimeContext{
		CurrentTime:     t.Format("15:04"),
		Day:             t.Format("Monday"),
		IsWeekend:       isWeekend,
		IsBusinessHours: isBusinessHours,
		IsAfterHours:    !isBusinessHours,
	}
}

// AvailableNow matches a contact's free-text availability window against the
// time context. Contacts without a window are always reachable.
func (c Contact) AvailableNow(tc TimeContext) bool {
	availability := strings.ToLower(c.Availability)
	if availability == "" {
		return true
	}

	if tc.IsBusinessHours {
		return strings.Contains(availability, "business hours") || strings.Contains(availability, "7:30am-5pm")
	}
	if tc.IsWeekend {
		return strings.Contains(availability, "weekend") || strings.Contains(availability, "after-hours")
	}
	return strings.Contains(availability, "after-hours")
}
