package utils

import (
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatRFC3339      DateFormat = time.RFC3339
	FormatISO8601Local DateFormat = "2006-01-02T15:04:05"
	FormatISO8601Date  DateFormat = "2006-01-02"
	FormatYearMonth    DateFormat = "2006-01"
	FormatYear         DateFormat = "2006"
	FormatShortMonth   DateFormat = "Jan 2006"
	FormatLongMonth    DateFormat = "January 2006"
	FormatShortDay     DateFormat = "Jan 2, 2006"
	FormatLongDay      DateFormat = "January 2, 2006"
	FormatUSDate       DateFormat = "01/02/2006"
	FormatUnixTime     DateFormat = "unix"
)

// DateValidator parses the free-form date strings stored on integration
// records and resume entries ("2024-01-15", "Jan 2024", "2023", ...).
type DateValidator struct {
	supportedFormats []DateFormat
	standardFormat   DateFormat
}

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	StandardFormat string
	OriginalValue  string
}

func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatRFC3339,
			FormatISO8601Local,
			FormatISO8601Date,
			FormatYearMonth,
			FormatShortMonth,
			FormatLongMonth,
			FormatShortDay,
			FormatLongDay,
			FormatUSDate,
			FormatYear,
		},
		standardFormat: FormatISO8601Date,
	}
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{OriginalValue: input}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	for _, format := range dv.supportedFormats {
		if parsedTime, err := time.Parse(string(format), input); err == nil {
			return dv.valid(result, format, parsedTime)
		}
	}

	// Unix seconds, only for values longer than a bare year.
	if len(input) > 4 {
		if unixTime, err := strconv.ParseInt(input, 10, 64); err == nil &&
			unixTime > 0 && unixTime < 4102444800 {
			return dv.valid(result, FormatUnixTime, time.Unix(unixTime, 0).UTC())
		}
	}

	return result
}

func (dv *DateValidator) valid(
	result ValidationResult,
	format DateFormat,
	parsedTime time.Time,
) ValidationResult {
	result.IsValid = true
	result.DetectedFormat = format
	result.ParsedTime = parsedTime
	result.StandardFormat = parsedTime.Format(string(dv.standardFormat))
	return result
}

var defaultDateValidator = NewDateValidator()

// ParseLooseDate returns the parsed time and whether the input was recognised.
func ParseLooseDate(input string) (time.Time, bool) {
	result := defaultDateValidator.ValidateAndConvert(input)
	return result.ParsedTime, result.IsValid
}

// CompareLooseDatesDesc orders newest first; unparseable dates sort after
// every parseable one and compare equal to each other.
func CompareLooseDatesDesc(a, b string) int {
	timeA, okA := ParseLooseDate(a)
	timeB, okB := ParseLooseDate(b)

	switch {
	case okA && okB:
		return timeB.Compare(timeA)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
