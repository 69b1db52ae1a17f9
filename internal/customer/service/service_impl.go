package service

import (
	"context"
	"strings"

	"github.com/mackml1997/reserves-rarities/internal/commerce7"
	"github.com/mackml1997/reserves-rarities/internal/customer/domain"
	gatewaydomain "github.com/mackml1997/reserves-rarities/internal/gateway/domain"
	"go.uber.org/zap"
)

// defaultMarketingStatus opts newly created customers into email marketing,
// matching the platform app's original behavior.
const defaultMarketingStatus = "Subscribed"

type Service struct {
	c7  *commerce7.Client
	log *zap.Logger
}

func NewService(c7 *commerce7.Client, log *zap.Logger) domain.Resolver {
	return &Service{
		c7:  c7,
		log: log.Named("customer.resolver"),
	}
}

// Resolve returns the id of the first customer matching the email, creating
// a new customer when none exists. There is no merge or conflict handling:
// whichever match the platform lists first wins.
func (s *Service) Resolve(ctx context.Context, tenantID, email, displayName string) (string, error) {
	matches, err := s.c7.SearchCustomersByEmail(ctx, tenantID, email)
	if err != nil {
		return "", err
	}
	if len(matches) > 0 {
		s.log.Debug("customer matched",
			zap.String("tenant_id", tenantID),
			zap.String("customer_id", matches[0].ID),
			zap.Int("matches", len(matches)),
		)
		return matches[0].ID, nil
	}

	firstName, lastName := SplitDisplayName(displayName)
	created, err := s.c7.CreateCustomer(ctx, tenantID, commerce7.CreateCustomerRequest{
		FirstName:            firstName,
		LastName:             lastName,
		Emails:               []commerce7.CustomerEmail{{Email: email}},
		EmailMarketingStatus: defaultMarketingStatus,
	})
	if err != nil {
		return "", err
	}

	s.log.Info("customer created",
		zap.String("tenant_id", tenantID),
		zap.String("customer_id", created.ID),
	)
	return created.ID, nil
}

// SplitDisplayName splits a display name on whitespace into first and last
// parts. Names that cannot be split fall back to the Unknown sentinels.
func SplitDisplayName(displayName string) (string, string) {
	fields := strings.Fields(displayName)
	if len(fields) < 2 {
		return gatewaydomain.UnknownField, gatewaydomain.UnknownField
	}
	return fields[0], strings.Join(fields[1:], " ")
}
