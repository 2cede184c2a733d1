package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateScan(t *testing.T) {

	t.Run("from string", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan("2023-06-01"))
		assert.Equal(t, "2023-06-01", d.String())
	})

	t.Run("from bytes", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan([]byte("2023-06-01")))
		assert.Equal(t, "2023-06-01", d.String())
	})

	t.Run("from time", func(t *testing.T) {
		var d Date
		require.NoError(t, d.Scan(time.Date(2023, 6, 1, 15, 4, 5, 0, time.UTC)))
		assert.Equal(t, "2023-06-01", d.String())
	})

	t.Run("bad input", func(t *testing.T) {
		var d Date
		assert.Error(t, d.Scan(42))
		assert.Error(t, d.Scan("01.06.2023"))
	})
}

func TestDateValue(t *testing.T) {

	d := NewDate(2023, 6, 1)
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-06-01", v)
}

func TestDateOfDropsTimeOfDay(t *testing.T) {

	d := DateOf(time.Date(2023, 6, 1, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, NewDate(2023, 6, 1), d)
}
