package preview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulk-renamer/go/internal/types"
)

func TestParseSizeFilter(t *testing.T) {
	f := ParseSizeFilter(">", "1024")
	require.NotNil(t, f)
	assert.Equal(t, types.SizeGreater, f.Op)
	assert.Equal(t, int64(1024), f.Bytes)

	f = ParseSizeFilter(" = ", " 0 ")
	require.NotNil(t, f)
	assert.Equal(t, types.SizeEqual, f.Op)
	assert.Equal(t, int64(0), f.Bytes)
}

func TestParseSizeFilterInvalidInputDisablesFilter(t *testing.T) {
	assert.Nil(t, ParseSizeFilter(">=", "100"))
	assert.Nil(t, ParseSizeFilter(">", "ten"))
	assert.Nil(t, ParseSizeFilter(">", ""))
	assert.Nil(t, ParseSizeFilter("", "100"))
}

func TestParseDateFilter(t *testing.T) {
	f := ParseDateFilter("before", "2024-06-01")
	require.NotNil(t, f)
	assert.Equal(t, types.DateBefore, f.Op)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), f.When)

	f = ParseDateFilter("after", "2024-06-01 13:45")
	require.NotNil(t, f)
	assert.Equal(t, types.DateAfter, f.Op)
	assert.Equal(t, 45, f.When.Minute())

	f = ParseDateFilter("after", "2024-06-01 13:45:30")
	require.NotNil(t, f)
	assert.Equal(t, 30, f.When.Second())
}

func TestParseDateFilterInvalidInputDisablesFilter(t *testing.T) {
	assert.Nil(t, ParseDateFilter("before", "June 1st"))
	assert.Nil(t, ParseDateFilter("before", "2024-13-40"))
	assert.Nil(t, ParseDateFilter("since", "2024-06-01"))
	assert.Nil(t, ParseDateFilter("before", ""))
}
