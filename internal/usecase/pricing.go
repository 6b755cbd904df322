package usecase

import (
	"fmt"
	"math"
	"time"

	"car-rental-booking/internal/data/entity"
)

// PriceLine is one labelled component of a quote, reused by the invoice.
type PriceLine struct {
	Label  string
	Amount float64
}

// PriceQuote is the full breakdown of a rental price. Total is always the
// sum of Lines; both are derived from the same inputs so repeated calls
// with an identical listing snapshot yield an identical quote.
type PriceQuote struct {
	Days  int
	Lines []PriceLine
	Total float64
}

// BillableDays returns the number of days billed for [from, to): the
// ceiling of the duration in days, never less than one full day.
func BillableDays(from, to time.Time) (int, error) {
	if !from.Before(to) {
		return 0, fmt.Errorf("%w: from %s is not before to %s",
			ErrInvalidInterval, from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	days := int(math.Ceil(to.Sub(from).Hours() / 24))
	if days < 1 {
		days = 1
	}

	return days, nil
}

type optionSelection struct {
	label    string
	selected bool
	pricing  entity.OptionPricing
}

func pairOptions(listing *entity.Listing, opts entity.BookingOptions) []optionSelection {
	return []optionSelection{
		{"Cancellation", opts.Cancellation, listing.Options.Cancellation},
		{"GPS", opts.GPS, listing.Options.GPS},
		{"Home delivery", opts.HomeDelivery, listing.Options.HomeDelivery},
		{"Baby chair", opts.BabyChair, listing.Options.BabyChair},
		{"Theft protection", opts.TheftProtection, listing.Options.TheftProtection},
		{"Collision damage waiver", opts.CollisionDamageWaiver, listing.Options.CollisionDamageWaiver},
		{"Full insurance", opts.FullInsurance, listing.Options.FullInsurance},
		{"Additional driver", opts.AdditionalDriver, listing.Options.AdditionalDriver},
	}
}

// BuildQuote prices a rental of listing over [from, to) with the selected
// add-ons under the chosen tender. It is a pure function of its inputs.
// Selecting an add-on the listing does not offer is a validation error,
// never silently ignored.
func BuildQuote(listing *entity.Listing, from, to time.Time, opts entity.BookingOptions, tender entity.PaymentType) (*PriceQuote, error) {
	days, err := BillableDays(from, to)
	if err != nil {
		return nil, err
	}

	quote := &PriceQuote{Days: days}

	base := listing.PricePerDay * float64(days)
	quote.Lines = append(quote.Lines, PriceLine{
		Label:  fmt.Sprintf("%s, %d day(s)", listing.CarName, days),
		Amount: base,
	})
	quote.Total = base

	for _, opt := range pairOptions(listing, opts) {
		if !opt.selected {
			continue
		}

		switch opt.pricing.Kind {
		case entity.OptionUnavailable:
			return nil, fmt.Errorf("%w: %s", ErrOptionNotOffered, opt.label)
		case entity.OptionIncluded:
			// Included in the base rate, contributes nothing
		case entity.OptionPerDay:
			amount := opt.pricing.Amount * float64(days)
			quote.Lines = append(quote.Lines, PriceLine{Label: opt.label, Amount: amount})
			quote.Total += amount
		}
	}

	if tender == entity.PaymentTypePayLater && listing.PayLaterFeePercent > 0 {
		fee := math.Round(quote.Total * listing.PayLaterFeePercent / 100)
		quote.Lines = append(quote.Lines, PriceLine{Label: "Pay later fee", Amount: fee})
		quote.Total += fee
	}

	return quote, nil
}

// Quote returns only the total of BuildQuote.
func Quote(listing *entity.Listing, from, to time.Time, opts entity.BookingOptions, tender entity.PaymentType) (float64, error) {
	quote, err := BuildQuote(listing, from, to, opts, tender)
	if err != nil {
		return 0, err
	}
	return quote.Total, nil
}
