package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	for _, raw := range []string{
		"2024-01-31T23:59:00Z",
		"2024-01-31T23:59:00.123Z",
		"2024-01-31T23:59:00+05:30",
		"2024-01-31T23:59:00",
		"2024-01-31 23:59:00",
		"2024-01-31",
	} {
		_, ok := ParseTimestamp(raw)
		assert.True(t, ok, raw)
	}

	for _, raw := range []string{"", "  ", "31/01/2024", "{invalid"} {
		_, ok := ParseTimestamp(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseDetails(t *testing.T) {
	d := ParseDetails(`{"productName":"Matte","photos":{"lhs":"a.jpg"},"qty":2,"ok":true}`)
	assert.Equal(t, "Matte", d.Text("product", "productName"))
	assert.Equal(t, "2", d.Text("qty"))
	assert.Equal(t, "true", d.Text("ok"))
	assert.Equal(t, "a.jpg", d.Object("photos").Text("lhs"))
	assert.Empty(t, d.Object("missing"))

	assert.Empty(t, ParseDetails("{invalid json"))
	assert.Empty(t, ParseDetails(`["not","an","object"]`))
	assert.Empty(t, ParseDetails("null"))
	assert.Empty(t, ParseDetails(""))
	assert.Equal(t, "", ParseDetails("{invalid json").Text("productName"))
}

func TestCoalesceAndOr(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "  ", "b", "c"))
	assert.Equal(t, "", Coalesce("", " "))
	assert.Equal(t, NA, Or(" ", NA))
	assert.Equal(t, "x", Or("x", NA))
}

func TestFormatDate(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	assert.Equal(t, "03/02/2026", FormatDate("2026-02-02T23:00:00Z", ist, DateLayout))
	assert.Equal(t, "03 Feb 2026, 04:30 am", FormatDate("2026-02-02T23:00:00Z", ist, DateTimeLayout))
	assert.Equal(t, "03 Feb 2026, 04:30 pm", FormatDate("2026-02-03T11:00:00Z", ist, DateTimeLayout))
	assert.Equal(t, NA, FormatDate("soon", ist, DateLayout))
}

func TestCasing(t *testing.T) {
	assert.Equal(t, "in progress", Humanize("in_progress"))
	assert.Equal(t, "SEAT COVER", Upper(Humanize("seat_cover")))
	assert.Equal(t, "Maruti", Capitalize("maruti"))
	assert.Equal(t, "BMW", Capitalize("BMW"))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 12.5, ParseNumber(" 12.5 "))
	assert.Equal(t, 0.0, ParseNumber("twelve"))
	assert.Equal(t, 0.0, ParseNumber("NaN"))
	assert.Equal(t, 0.0, ParseNumber(""))
}
