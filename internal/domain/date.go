package domain

import (
	"strings"
	"time"

	"github.com/vfg2006/social-insights-dashboard/pkg/utils"
)

// Date é uma data de calendário serializada como YYYY-MM-DD
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "null" {
		return nil
	}

	parsed, err := utils.ParseDate(value)
	if err != nil {
		return err
	}

	d.Time = parsed
	return nil
}
