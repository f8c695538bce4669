package payments

import (
	"context"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Intent is the slice of a payment intent this service cares about: an opaque
// id the client later echoes back, and the secret the client needs to confirm
// the payment.
type Intent struct {
	ID           string
	ClientSecret string
}

// PaymentIntents is the opaque payment collaborator. The ledger never
// verifies a payment id against it; it only creates intents.
type PaymentIntents interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error)
}

// callTimeout bounds the one external call in the request path; without it a
// slow gateway stalls the request indefinitely.
const callTimeout = 10 * time.Second

// StripeClient implements PaymentIntents against the Stripe API.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

func (s *StripeClient) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
