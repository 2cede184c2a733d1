package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const DateFormat = "2006-01-02"

// Date is a calendar date stored in a DATE column. Sendings and orders
// match on exact date equality, so no time-of-day component is kept.
type Date time.Time

func NewDate(year, month, day int) Date {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return Date(t)
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (t *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return t.UnmarshalText(string(v))
	case string:
		return t.UnmarshalText(v)
	case time.Time:
		*t = Date(v)
	case nil:
		*t = Date{}
	default:
		return fmt.Errorf("cannot sql.Scan() Date from: %#v", v)
	}

	return nil
}

func (t *Date) UnmarshalText(value string) error {
	dd, err := time.Parse(DateFormat, value)
	if err != nil {
		return err
	}

	*t = Date(dd)

	return nil
}

func (t Date) Value() (driver.Value, error) {
	return driver.Value(time.Time(t).Format(DateFormat)), nil
}

func (t Date) String() string {
	return time.Time(t).Format(DateFormat)
}

func (Date) GormDataType() string {
	return "DATE"
}
