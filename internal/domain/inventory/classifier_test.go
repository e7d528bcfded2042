package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netyark/mall-api/internal/domain/inventory"
)

func TestIsLowStock(t *testing.T) {
	cases := []struct {
		name      string
		stock     int
		threshold int
		want      bool
	}{
		{"above threshold", 10, 5, false},
		{"at threshold", 5, 5, true},
		{"below threshold", 2, 5, true},
		{"zero stock", 0, 5, true},
		{"zero threshold only flags empty", 1, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, inventory.IsLowStock(c.stock, c.threshold))
		})
	}
}

func TestIsOutOfStock(t *testing.T) {
	assert.True(t, inventory.IsOutOfStock(0))
	assert.False(t, inventory.IsOutOfStock(1))
}
