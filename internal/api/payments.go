package api

import (
	"context"
	"math"
	"net/http"

	"bookhub/pkg/models"
)

// FetchPaymentFees returns the user's outstanding late fees in dollars.
func (c *Client) FetchPaymentFees(ctx context.Context) (float64, error) {
	var fees float64
	err := c.do(ctx, http.MethodGet, paymentInfoPath, nil, true, nil, &fees)
	return fees, err
}

// CreatePaymentIntent opens a payment for the given amount and returns
// the intent with its client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, info models.PaymentInfo) (models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := c.do(ctx, http.MethodPost, paymentIntentPath, nil, true, info, &intent)
	return intent, err
}

// CompletePayment confirms the payment and clears the fees server-side.
func (c *Client) CompletePayment(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, paymentCompletePath, nil, true, nil, nil)
}

// PayFees runs the whole fee payment: amounts are converted to cents,
// the receipt goes to the account email from the token's sub claim, and
// completion only happens after the intent is accepted.
func (c *Client) PayFees(ctx context.Context, fees float64) error {
	if !c.canAuthorize() {
		return ErrNotAuthenticated
	}
	if fees <= 0 {
		return nil
	}

	info := models.PaymentInfo{
		Amount:       int(math.Round(fees * 100)),
		Currency:     "USD",
		ReceiptEmail: c.session.Subject(),
	}

	if _, err := c.CreatePaymentIntent(ctx, info); err != nil {
		return err
	}
	return c.CompletePayment(ctx)
}
