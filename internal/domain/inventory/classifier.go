package inventory

// IsLowStock implements the restock-alert rule (domain service).
// A product is low when its balance has reached the per-product threshold.
func IsLowStock(stock, threshold int) bool {
	return stock <= threshold
}

// IsOutOfStock reports whether the balance is exhausted.
func IsOutOfStock(stock int) bool {
	return stock == 0
}
