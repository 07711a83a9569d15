// Package cardsim validates card-like input and simulates payment
// authorization. No network calls are made; a card that passes brand
// detection, the mod-10 checksum and the format checks is authorized.
package cardsim

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/lmercier/maisoncafe/internal/domain"
)

type Brand string

const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "mastercard"
	BrandUnknown    Brand = "unknown"
)

var (
	digitsRe     = regexp.MustCompile(`^\d{12,19}$`)
	visaRe       = regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)
	mastercardRe = regexp.MustCompile(`^(5[1-5][0-9]{14}|2(2[2-9][0-9]{12}|[3-6][0-9]{13}|7[01][0-9]{12}|720[0-9]{12}))$`)
	expiryRe     = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvcRe        = regexp.MustCompile(`^\d{3,4}$`)
)

func sanitize(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// DetectBrand classifies a card number. Only Visa and Mastercard are
// accepted by the simulated gateway.
func DetectBrand(number string) Brand {
	n := sanitize(number)
	switch {
	case visaRe.MatchString(n):
		return BrandVisa
	case mastercardRe.MatchString(n):
		return BrandMastercard
	default:
		return BrandUnknown
	}
}

// LuhnCheck runs the standard mod-10 checksum over a 12-19 digit number.
func LuhnCheck(number string) bool {
	n := sanitize(number)
	if !digitsRe.MatchString(n) {
		return false
	}
	sum := 0
	double := false
	for i := len(n) - 1; i >= 0; i-- {
		d := int(n[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// Validate checks every card field and returns the first user-facing
// rejection, in the same order the checkout form reports them.
func Validate(card domain.Card) error {
	if DetectBrand(card.Number) == BrandUnknown {
		return &domain.ValidationError{Field: "card number", Reason: "unrecognized brand, use Visa or Mastercard"}
	}
	if !LuhnCheck(card.Number) {
		return &domain.ValidationError{Field: "card number", Reason: "checksum failed"}
	}
	if !expiryRe.MatchString(card.Expiry) {
		return &domain.ValidationError{Field: "expiry", Reason: "expected MM/YY"}
	}
	if !cvcRe.MatchString(card.CVC) {
		return &domain.ValidationError{Field: "cvc", Reason: "expected 3 or 4 digits"}
	}
	return nil
}

// Gateway implements domain.PaymentGateway.
type Gateway struct {
	// Latency imitates the acquirer round-trip before authorization.
	Latency time.Duration
}

func NewGateway(latency time.Duration) *Gateway { return &Gateway{Latency: latency} }

func (g *Gateway) Authorize(ctx context.Context, card domain.Card) error {
	if err := Validate(card); err != nil {
		return err
	}
	if g.Latency > 0 {
		t := time.NewTimer(g.Latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
