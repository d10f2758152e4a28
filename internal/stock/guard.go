// Package stock provides the admission guard that keeps requested
// quantities inside the available stock for a product.
package stock

// Admit clamps the requested quantity to the available stock. It returns
// the admitted quantity and whether clamping occurred. Negative requests
// and negative stock are treated as zero.
func Admit(requested, stock int) (int, bool) {
	if stock < 0 {
		stock = 0
	}
	if requested < 0 {
		return 0, true
	}
	if requested > stock {
		return stock, true
	}
	return requested, false
}

// Available reports whether at least one unit can be sold.
func Available(stock int) bool {
	return stock > 0
}
