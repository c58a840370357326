package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 37.5, RoundMoney(37.5))
	assert.Equal(t, 0.0, RoundMoney(0))
	assert.Equal(t, 100.0, RoundMoney(99.999))
	assert.InDelta(t, 16.67, RoundMoney(16.666666), 0.001)
}

func TestCalculateTotal(t *testing.T) {
	// 2 часа по 25.00
	assert.Equal(t, 50.0, CalculateTotal(25.0, mkInterval(10, 12)))

	// 90 минут по 25.00
	total := CalculateTotal(25.0, Interval{Start: mkTime(10, 0), End: mkTime(11, 30)})
	assert.Equal(t, 37.5, total)

	// 45 минут по 30.00
	total = CalculateTotal(30.0, Interval{Start: mkTime(10, 0), End: mkTime(10, 45)})
	assert.Equal(t, 22.5, total)

	// Дальнейшие изменения тарифа на результат не влияют: функция чистая
	// и зависит только от переданного тарифа
	total = CalculateTotal(40.0, Interval{Start: mkTime(18, 0), End: mkTime(19, 30)})
	assert.Equal(t, 60.0, total)
}
