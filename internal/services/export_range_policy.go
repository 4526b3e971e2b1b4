package services

import (
	"errors"
	"strings"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ExportRange bounds an export by inclusive ISO dates. Empty bounds are open.
type ExportRange struct {
	From string
	To   string
}

func ParseExportRange(rawFrom string, rawTo string) (ExportRange, error) {
	var exportRange ExportRange

	if value := strings.TrimSpace(rawFrom); value != "" {
		from, err := ParseDayDate(value)
		if err != nil {
			return ExportRange{}, ErrExportFromDateInvalid
		}
		exportRange.From = from
	}
	if value := strings.TrimSpace(rawTo); value != "" {
		to, err := ParseDayDate(value)
		if err != nil {
			return ExportRange{}, ErrExportToDateInvalid
		}
		exportRange.To = to
	}

	if exportRange.From != "" && exportRange.To != "" && exportRange.To < exportRange.From {
		return ExportRange{}, ErrExportRangeInvalid
	}
	return exportRange, nil
}

// exclusiveTo converts the inclusive upper bound for half-open queries.
func (exportRange ExportRange) exclusiveTo() string {
	if exportRange.To == "" {
		return ""
	}
	next, err := NextDayKey(exportRange.To)
	if err != nil {
		return ""
	}
	return next
}
