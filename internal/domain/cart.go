package domain

import "time"

// CartItem is a single cart line. Product is a deep snapshot taken at the
// moment of insertion; later catalog edits never affect it. UnitPrice is the
// base price plus the extra cost of every selected option, before the
// quantity multiplier.
type CartItem struct {
	ID         string            `json:"id"`
	Product    Product           `json:"product"`
	Quantity   int               `json:"quantity"`
	Selections map[string]string `json:"selections,omitempty"`
	UnitPrice  float64           `json:"unit_price"`
	CreatedAt  time.Time         `json:"created_at"`
}

// LineTotal is the unit price multiplied by the quantity.
func (i *CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Clone returns a deep copy of the cart item.
func (i *CartItem) Clone() *CartItem {
	cp := *i
	cp.Product = *i.Product.Clone()
	if i.Selections != nil {
		cp.Selections = make(map[string]string, len(i.Selections))
		for group, opt := range i.Selections {
			cp.Selections[group] = opt
		}
	}
	return &cp
}

// Cart holds a user's pending lines. Identical product/selection
// combinations added twice stay as two distinct lines.
type Cart struct {
	UserID int64      `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// Subtotal sums the line totals of every item.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for i := range c.Items {
		sum += c.Items[i].LineTotal()
	}
	return sum
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	cp := &Cart{UserID: c.UserID}
	if c.Items != nil {
		cp.Items = make([]CartItem, 0, len(c.Items))
		for i := range c.Items {
			cp.Items = append(cp.Items, *c.Items[i].Clone())
		}
	}
	return cp
}
