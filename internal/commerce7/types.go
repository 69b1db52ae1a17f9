package commerce7

// Customer is the platform's customer record, reduced to the fields the
// connector reads.
type Customer struct {
	ID        string          `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Emails    []CustomerEmail `json:"emails"`
}

type CustomerEmail struct {
	Email string `json:"email"`
}

type customerSearchResponse struct {
	Customers []Customer `json:"customers"`
}

// CreateCustomerRequest is the platform's customer creation payload.
type CreateCustomerRequest struct {
	FirstName            string          `json:"firstName"`
	LastName             string          `json:"lastName"`
	Emails               []CustomerEmail `json:"emails"`
	EmailMarketingStatus string          `json:"emailMarketingStatus"`
}

// Order is the platform's order payload; the same shape comes back on
// creation with the platform-assigned id filled in.
type Order struct {
	ID                  string         `json:"id,omitempty"`
	Channel             string         `json:"channel"`
	CustomerID          string         `json:"customerId"`
	OrderNumber         int64          `json:"orderNumber"`
	ExternalOrderNumber string         `json:"externalOrderNumber"`
	OrderDeliveryMethod string         `json:"orderDeliveryMethod"`
	SubTotal            float64        `json:"subTotal"`
	Total               float64        `json:"total"`
	PaymentStatus       string         `json:"paymentStatus"`
	FulfillmentStatus   string         `json:"fulfillmentStatus"`
	Shipping            []ShippingItem `json:"shipping"`
	ShipTo              ShipTo         `json:"shipTo"`
	Items               []OrderItem    `json:"items"`
	AppData             map[string]any `json:"appData"`
}

type ShippingItem struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

type ShipTo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Address     string `json:"address"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	StateCode   string `json:"stateCode"`
	ZipCode     string `json:"zipCode"`
	CountryCode string `json:"countryCode"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
