package preview

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bulk-renamer/go/internal/types"
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseSizeFilter converts raw operator and threshold input into a size
// filter. Invalid input disables the filter (nil result) instead of failing
// the preview call.
func ParseSizeFilter(op, threshold string) *types.SizeFilter {
	sizeOp := types.SizeOp(strings.TrimSpace(op))
	switch sizeOp {
	case types.SizeGreater, types.SizeLess, types.SizeEqual:
	default:
		return nil
	}
	bytes, err := strconv.ParseInt(strings.TrimSpace(threshold), 10, 64)
	if err != nil {
		log.Debug().Str("threshold", threshold).Msg("Ignoring invalid size filter")
		return nil
	}
	return &types.SizeFilter{Op: sizeOp, Bytes: bytes}
}

// ParseDateFilter converts raw operator and date input into a date filter.
// Invalid input disables the filter.
func ParseDateFilter(op, value string) *types.DateFilter {
	dateOp := types.DateOp(strings.TrimSpace(op))
	switch dateOp {
	case types.DateBefore, types.DateAfter:
	default:
		return nil
	}
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if when, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &types.DateFilter{Op: dateOp, When: when}
		}
	}
	log.Debug().Str("value", value).Msg("Ignoring invalid date filter")
	return nil
}
