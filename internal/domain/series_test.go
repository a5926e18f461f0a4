package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFullNumber(t *testing.T) {
	assert.Equal(t, "INV 1", FormatFullNumber("INV", 1))
	assert.Equal(t, "FAK 1042", FormatFullNumber("FAK", 1042))
}

func TestPeekNextNumber(t *testing.T) {
	s := &InvoiceSeries{SeriesCode: "INV", CurrentNumber: 6}
	assert.Equal(t, int64(7), s.PeekNextNumber())

	// Peeking never moves the counter.
	assert.Equal(t, int64(7), s.PeekNextNumber())
	assert.Equal(t, int64(6), s.CurrentNumber)

	fresh := &InvoiceSeries{SeriesCode: "NEW"}
	assert.Equal(t, int64(1), fresh.PeekNextNumber())
}
