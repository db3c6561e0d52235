package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusNew        OrderStatus = "New"
	StatusConfirmed  OrderStatus = "Confirmed"
	StatusInProgress OrderStatus = "In Progress"
	StatusCompleted  OrderStatus = "Completed"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusNew,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Rank returns the position of s in the lifecycle chain, or -1 for an
// unknown status.
func (s OrderStatus) Rank() int {
	for i, known := range OrderStatuses {
		if s == known {
			return i
		}
	}
	return -1
}

// Customer is the contact snapshot copied onto an order at checkout.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderItem is a cart line frozen into an order. It carries everything
// needed to render and price the line without consulting the catalog.
type OrderItem struct {
	ProductID   int64             `json:"product_id"`
	ProductName string            `json:"product_name"`
	Quantity    int               `json:"quantity"`
	Selections  map[string]string `json:"selections,omitempty"`
	UnitPrice   float64           `json:"unit_price"`
	LineTotal   float64           `json:"line_total"`
}

// Order is a placed order. Items and Customer are deep snapshots; later
// catalog or profile edits never change a historical order.
type Order struct {
	ID          string      `json:"id"`
	UserID      int64       `json:"user_id"`
	Customer    Customer    `json:"customer"`
	DeliveryAt  time.Time   `json:"delivery_at"`
	Items       []OrderItem `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	DeliveryFee float64     `json:"delivery_fee"`
	Total       float64     `json:"total"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	cp := *o
	if o.Items != nil {
		cp.Items = make([]OrderItem, len(o.Items))
		for i := range o.Items {
			item := o.Items[i]
			if item.Selections != nil {
				sel := make(map[string]string, len(item.Selections))
				for group, opt := range item.Selections {
					sel[group] = opt
				}
				item.Selections = sel
			}
			cp.Items[i] = item
		}
	}
	return &cp
}
