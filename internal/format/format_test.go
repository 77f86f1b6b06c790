package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDates(t *testing.T) {
	ts := time.Date(2025, 3, 4, 15, 0, 0, 0, time.UTC)
	require.Equal(t, "Mar 4, 2025", Date(ts))
	require.Equal(t, "2025-03-04", ISODate(ts))
	require.Equal(t, "", Date(time.Time{}))
	require.Equal(t, "", ISODate(time.Time{}))
}

func TestPhone(t *testing.T) {
	require.Equal(t, "(954) 555-0148", Phone("+1-954-555-0148"))
	require.Equal(t, "(954) 555-0148", Phone("954.555.0148"))
	require.Equal(t, "+44 20 7946 0000", Phone("+44 20 7946 0000"))

	require.Equal(t, "tel:+19545550148", TelHref("+1-954-555-0148"))
	require.Equal(t, "tel:9545550148", TelHref("(954) 555-0148"))
	require.Equal(t, "", TelHref("call us"))
}
