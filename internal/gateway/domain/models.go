package domain

// Sentinel values used when the payment processor omits optional fields. The
// pipeline favors best-effort completion over strict validation, so missing
// identity and address data degrade to these rather than failing the run.
const (
	UnknownEmail = "unknown"
	UnknownField = "Unknown"
)

// Address is the normalized shipping address from a transaction.
type Address struct {
	Line1      string `json:"address"`
	Line2      string `json:"address2"`
	City       string `json:"city"`
	State      string `json:"stateCode"`
	PostalCode string `json:"zipCode"`
	Country    string `json:"countryCode"`
}

// LineItem is one purchasable unit extracted from a charge's metadata.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Transaction is the canonical, per-run representation of a payment-processor
// transaction: customer identity from the first charge, line items from every
// charge.
type Transaction struct {
	Ref      string
	Email    string
	Name     string
	Shipping Address
	Items    []LineItem
}

// Subtotal sums price times quantity across line items. The order's subtotal
// and total are both this value; there is no tax or shipping-cost modeling.
func (t *Transaction) Subtotal() float64 {
	var sum float64
	for _, item := range t.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}
