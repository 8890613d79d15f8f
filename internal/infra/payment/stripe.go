package payment

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/refund"
)

// 決済プロバイダ（Stripe）の窓口。
// 金額は常にセントス単位、通貨はbrl固定。
type StripeIssuer struct {
	currency string
}

func NewStripeIssuer(secretKey string) (*StripeIssuer, error) {
	key := strings.TrimSpace(secretKey)
	if key == "" {
		return nil, errors.New("stripe secret key is empty")
	}
	stripe.Key = key
	return &StripeIssuer{currency: string(stripe.CurrencyBRL)}, nil
}

// CreateIntent は与えた金額のpayment intentを作り、client secretを返す。
// カード確定（3Dセキュア等）はクライアント側のStripe.jsが行う。
func (s *StripeIssuer) CreateIntent(ctx context.Context, amount int64, description string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(s.currency),
		Description: stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

// Refund は保存済みのpayment intentに対して全額返金を発行する。
func (s *StripeIssuer) Refund(ctx context.Context, paymentIntentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx

	_, err := refund.New(params)
	return err
}
