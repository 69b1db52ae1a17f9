package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mackml1997/reserves-rarities/internal/commerce7"
	gatewaydomain "github.com/mackml1997/reserves-rarities/internal/gateway/domain"
	"github.com/mackml1997/reserves-rarities/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	orderChannel        = "Web"
	deliveryMethod      = "Ship"
	paymentStatusPaid   = "Paid"
	fulfillmentPending  = "Not Fulfilled"
	shippingTitle       = "Flat Rate"
	appDataSource       = "reserves-rarities-bridge"

	// The platform order always ships to this placeholder recipient; the
	// resolved customer name is intentionally not used here.
	shipToFirstName = "Valued"
	shipToLastName  = "Customer"
)

type Params struct {
	fx.In

	C7    *commerce7.Client
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	c7    *commerce7.Client
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) domain.Submitter {
	return &Service{
		c7:    p.C7,
		log:   p.Log.Named("order.submitter"),
		genID: p.GenID,
	}
}

func (s *Service) Submit(ctx context.Context, tenantID, customerID string, txn *gatewaydomain.Transaction) (*commerce7.Order, error) {
	order := buildOrder(s.genID.Generate(), customerID, txn)

	created, err := s.c7.CreateOrder(ctx, tenantID, order)
	if err != nil {
		return nil, err
	}

	s.log.Info("order submitted",
		zap.String("tenant_id", tenantID),
		zap.String("order_id", created.ID),
		zap.Int64("order_number", order.OrderNumber),
		zap.Float64("total", order.Total),
	)
	return created, nil
}

// buildOrder maps a normalized transaction onto the platform order payload.
// Subtotal and total are always equal; there is no tax, discount or shipping
// cost modeling. Order numbers come from the snowflake node, so they are
// unique and monotonic rather than random.
func buildOrder(orderNumber snowflake.ID, customerID string, txn *gatewaydomain.Transaction) commerce7.Order {
	items := make([]commerce7.OrderItem, 0, len(txn.Items))
	for _, item := range txn.Items {
		items = append(items, commerce7.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	subtotal := txn.Subtotal()
	return commerce7.Order{
		Channel:             orderChannel,
		CustomerID:          customerID,
		OrderNumber:         orderNumber.Int64(),
		ExternalOrderNumber: "stripe-" + txn.Ref,
		OrderDeliveryMethod: deliveryMethod,
		SubTotal:            subtotal,
		Total:               subtotal,
		PaymentStatus:       paymentStatusPaid,
		FulfillmentStatus:   fulfillmentPending,
		Shipping:            []commerce7.ShippingItem{{Title: shippingTitle, Price: 0}},
		ShipTo: commerce7.ShipTo{
			FirstName:   shipToFirstName,
			LastName:    shipToLastName,
			Address:     txn.Shipping.Line1,
			Address2:    txn.Shipping.Line2,
			City:        txn.Shipping.City,
			StateCode:   txn.Shipping.State,
			ZipCode:     txn.Shipping.PostalCode,
			CountryCode: txn.Shipping.Country,
		},
		Items: items,
		AppData: map[string]any{
			"source":         appDataSource,
			"transactionRef": txn.Ref,
		},
	}
}
