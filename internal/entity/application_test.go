package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplicationPrice(t *testing.T) {

	a := Application{}

	t.Run("simple", func(t *testing.T) {
		order := orderWithDims("100", "50", "20") // 0.1 m^3
		sending := Sending{PriceForM3: decimal.RequireFromString("500")}
		assert.Equal(t, 50.0, a.Price(&order, &sending))
	})

	t.Run("rounded to kopecks", func(t *testing.T) {
		order := orderWithDims("100", "100", "100") // 1 m^3
		sending := Sending{PriceForM3: decimal.RequireFromString("499.999")}
		assert.Equal(t, 500.0, a.Price(&order, &sending))
	})

	t.Run("zero volume", func(t *testing.T) {
		order := orderWithDims("0", "50", "20")
		sending := Sending{PriceForM3: decimal.RequireFromString("500")}
		assert.Equal(t, 0.0, a.Price(&order, &sending))
	})
}

func TestApplicationStatusLabel(t *testing.T) {
	assert.Equal(t, "Ожидается подтверждение", WAIT.Label())
	assert.Equal(t, "Подтверждено", CONF.Label())
	assert.Equal(t, "Отклонено", DECL.Label())
	assert.Equal(t, "", ApplicationStatus("NOPE").Label())
}

func TestIsValidApplicationStatus(t *testing.T) {
	for _, s := range []string{"WAIT", "CONF", "DECL"} {
		assert.True(t, IsValidApplicationStatus(s))
	}
	assert.False(t, IsValidApplicationStatus("wait"))
	assert.False(t, IsValidApplicationStatus(""))
}
