package domain

// CartItem is one server-assigned cart line. UnitPrice and Subtotal are in
// Chilean pesos (integer currency, no fractional unit) and are always the
// backend's numbers, never recomputed locally.
type CartItem struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"producto"`
	Name      string `json:"nombre_producto"`
	UnitPrice int64  `json:"precio_producto"`
	ImageURL  string `json:"imagen_producto,omitempty"`
	Stock     int    `json:"stock_producto"`
	Quantity  int    `json:"cantidad"`
	Subtotal  int64  `json:"subtotal"`
}

// CartState is the local mirror of the user's server-side cart. It is only
// ever replaced wholesale with a backend response; no operation edits it in
// place, which keeps client and server notions of price and stock aligned.
type CartState struct {
	Items []CartItem `json:"items"`
	Total int64      `json:"total"`
}

// EmptyCart is the state after logout or a successful clear.
func EmptyCart() CartState {
	return CartState{Items: []CartItem{}}
}

// ItemCount is the sum of line quantities, used for the cart badge.
func (c CartState) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Sanitize drops rows that violate the quantity invariant (a present line
// always has quantity >= 1). Applied at the backend response boundary so an
// odd payload never installs an invalid local state.
func (c CartState) Sanitize() CartState {
	items := make([]CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.Quantity < 1 {
			continue
		}
		items = append(items, it)
	}
	c.Items = items
	return c
}
