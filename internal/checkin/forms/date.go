package forms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NowFunc supplies the reference time for temporal constraints so tests can
// pin the clock.
type NowFunc func() time.Time

// DateConstraint is an optional temporal rule evaluated only once a date has
// parsed as a real calendar date.
type DateConstraint int

const (
	NoConstraint DateConstraint = iota
	MustBePast
	MustBeTodayOrPast
	MustBeFuture
	MustBeTodayOrFuture
)

// DateField declares a composite day/month/year input. Anchor is the group
// anchor; sub-inputs anchor at Anchor-day, Anchor-month and Anchor-year.
// Label reads like "your date of birth" and opens most messages.
type DateField struct {
	Anchor     string
	Label      string
	Required   bool
	Constraint DateConstraint
}

// DateInput is the raw submitted triple.
type DateInput struct {
	Day   string
	Month string
	Year  string
}

// DateInputFromBody pulls the three sub-fields for a group anchor out of a
// form body.
func DateInputFromBody(body url.Values, anchor string) DateInput {
	return DateInput{
		Day:   strings.TrimSpace(body.Get(anchor + "-day")),
		Month: strings.TrimSpace(body.Get(anchor + "-month")),
		Year:  strings.TrimSpace(body.Get(anchor + "-year")),
	}
}

// DateValue is the coerced result. Set is false when an optional field was
// left fully blank; the transformed payload then omits the date entirely.
type DateValue struct {
	Day   int
	Month int
	Year  int
	Set   bool
}

// ISO renders the value as an ISO calendar date for the backend contract.
func (v DateValue) ISO() string {
	if !v.Set {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", v.Year, v.Month, v.Day)
}

func (f DateField) day() string   { return f.Anchor + "-day" }
func (f DateField) month() string { return f.Anchor + "-month" }
func (f DateField) year() string  { return f.Anchor + "-year" }

// Validate applies the composite date rules and returns the coerced value or
// the anchored issues. now supplies "today" for temporal constraints.
func (f DateField) Validate(in DateInput, now time.Time) (DateValue, []Issue) {
	blankDay := in.Day == ""
	blankMonth := in.Month == ""
	blankYear := in.Year == ""

	// Fully blank: a single group-anchored error when required, an omitted
	// value when optional.
	if blankDay && blankMonth && blankYear {
		if f.Required {
			return DateValue{}, []Issue{{Message: "Enter " + f.Label, Anchor: f.Anchor}}
		}
		return DateValue{}, nil
	}

	// Partially blank: name the missing part(s), anchored to the missing
	// inputs. With two missing, the second carries a message-less companion
	// issue so it highlights without repeating the text.
	if blankDay || blankMonth || blankYear {
		issues := f.missingPartIssues(blankDay, blankMonth, blankYear)
		// The 4-digit year rule still applies when the year is present.
		if !blankYear && !fourDigits(in.Year) {
			issues = append(issues, Issue{
				Message: sentence(f.Label) + " year must include 4 numbers",
				Anchor:  f.year(),
			})
		}
		return DateValue{}, issues
	}

	if !fourDigits(in.Year) {
		return DateValue{}, []Issue{{
			Message: sentence(f.Label) + " year must include 4 numbers",
			Anchor:  f.year(),
		}}
	}

	day, dayErr := strconv.Atoi(in.Day)
	month, monthErr := strconv.Atoi(in.Month)
	year, _ := strconv.Atoi(in.Year)
	if dayErr != nil || monthErr != nil || len(in.Day) > 2 || len(in.Month) > 2 || !realDate(day, month, year) {
		return DateValue{}, f.groupIssues(sentence(f.Label) + " must be a real date")
	}

	if msg := f.constraintViolation(day, month, year, now); msg != "" {
		return DateValue{}, f.groupIssues(msg)
	}

	return DateValue{Day: day, Month: month, Year: year, Set: true}, nil
}

// missingPartIssues builds the errors for one or two missing sub-fields.
func (f DateField) missingPartIssues(blankDay, blankMonth, blankYear bool) []Issue {
	type part struct {
		name   string
		anchor string
	}
	var missing []part
	if blankDay {
		missing = append(missing, part{"a day", f.day()})
	}
	if blankMonth {
		missing = append(missing, part{"a month", f.month()})
	}
	if blankYear {
		missing = append(missing, part{"a year", f.year()})
	}

	if len(missing) == 1 {
		return []Issue{{
			Message: sentence(f.Label) + " must include " + missing[0].name,
			Anchor:  missing[0].anchor,
		}}
	}
	return []Issue{
		{
			Message: sentence(f.Label) + " must include " + missing[0].name + " and " + missing[1].name,
			Anchor:  missing[0].anchor,
		},
		{Anchor: missing[1].anchor},
	}
}

// groupIssues anchors a message at the day input with silent companions on
// month and year so the whole group highlights.
func (f DateField) groupIssues(message string) []Issue {
	return []Issue{
		{Message: message, Anchor: f.day()},
		{Anchor: f.month()},
		{Anchor: f.year()},
	}
}

func (f DateField) constraintViolation(day, month, year int, now time.Time) string {
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch f.Constraint {
	case MustBePast:
		if !date.Before(today) {
			return sentence(f.Label) + " must be in the past"
		}
	case MustBeTodayOrPast:
		if date.After(today) {
			return sentence(f.Label) + " must be today or in the past"
		}
	case MustBeFuture:
		if !date.After(today) {
			return sentence(f.Label) + " must be in the future"
		}
	case MustBeTodayOrFuture:
		if date.Before(today) {
			return sentence(f.Label) + " must be today or in the future"
		}
	}
	return ""
}

// realDate rejects impossible calendar combinations (31 February, month 13)
// by checking that time.Date did not normalize the components.
func realDate(day, month, year int) bool {
	if day < 1 || month < 1 {
		return false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return date.Year() == year && date.Month() == time.Month(month) && date.Day() == day
}

func fourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
