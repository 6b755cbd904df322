package usecase

import (
	"testing"
	"time"

	"car-rental-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testListing() *entity.Listing {
	return &entity.Listing{
		CarName:            "Toyota Corolla",
		PricePerDay:        50,
		Inventory:          1,
		Available:          true,
		PayLaterFeePercent: 10,
		Status:             entity.ListingStatusActive,
		Options: entity.ListingOptions{
			Cancellation:          entity.OptionPricing{Kind: entity.OptionIncluded},
			GPS:                   entity.OptionPricing{Kind: entity.OptionPerDay, Amount: 5},
			HomeDelivery:          entity.OptionPricing{Kind: entity.OptionUnavailable},
			BabyChair:             entity.OptionPricing{Kind: entity.OptionPerDay, Amount: 3},
			TheftProtection:       entity.OptionPricing{Kind: entity.OptionUnavailable},
			CollisionDamageWaiver: entity.OptionPricing{Kind: entity.OptionUnavailable},
			FullInsurance:         entity.OptionPricing{Kind: entity.OptionUnavailable},
			AdditionalDriver:      entity.OptionPricing{Kind: entity.OptionUnavailable},
		},
	}
}

func TestBillableDays(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"two full days", day("2024-01-01"), day("2024-01-03"), 2},
		{"partial day rounds up", day("2024-01-01").Add(10 * time.Hour), day("2024-01-03").Add(9 * time.Hour), 2},
		{"under one day bills one", day("2024-01-01"), day("2024-01-01").Add(6 * time.Hour), 1},
		{"three days", day("2024-06-01"), day("2024-06-04"), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BillableDays(tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBillableDays_InvalidInterval(t *testing.T) {
	_, err := BillableDays(day("2024-01-03"), day("2024-01-01"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = BillableDays(day("2024-01-01"), day("2024-01-01"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestQuote_BaseWithAddOn(t *testing.T) {
	// 3 days at 50/day plus gps at 5/day
	total, err := Quote(testListing(), day("2024-06-01"), day("2024-06-04"),
		entity.BookingOptions{GPS: true}, entity.PaymentTypeCard)
	require.NoError(t, err)

	assert.Equal(t, 165.0, total)
}

func TestQuote_IncludedOptionIsFree(t *testing.T) {
	withOption, err := Quote(testListing(), day("2024-06-01"), day("2024-06-04"),
		entity.BookingOptions{Cancellation: true}, entity.PaymentTypeCard)
	require.NoError(t, err)

	without, err := Quote(testListing(), day("2024-06-01"), day("2024-06-04"),
		entity.BookingOptions{}, entity.PaymentTypeCard)
	require.NoError(t, err)

	assert.Equal(t, without, withOption)
}

func TestQuote_UnofferedOptionRejected(t *testing.T) {
	_, err := Quote(testListing(), day("2024-06-01"), day("2024-06-04"),
		entity.BookingOptions{HomeDelivery: true}, entity.PaymentTypeCard)

	assert.ErrorIs(t, err, ErrOptionNotOffered)
}

func TestQuote_PayLaterFee(t *testing.T) {
	// Subtotal 150, fee 10% rounded = 15
	total, err := Quote(testListing(), day("2024-06-01"), day("2024-06-04"),
		entity.BookingOptions{}, entity.PaymentTypePayLater)
	require.NoError(t, err)

	assert.Equal(t, 165.0, total)
}

func TestQuote_Deterministic(t *testing.T) {
	listing := testListing()
	opts := entity.BookingOptions{GPS: true, BabyChair: true}

	first, err := Quote(listing, day("2024-06-01"), day("2024-06-04"), opts, entity.PaymentTypePayLater)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Quote(listing, day("2024-06-01"), day("2024-06-04"), opts, entity.PaymentTypePayLater)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildQuote_LinesSumToTotal(t *testing.T) {
	quote, err := BuildQuote(testListing(), day("2024-06-01"), day("2024-06-04"),
		entity.BookingOptions{GPS: true, BabyChair: true}, entity.PaymentTypePayLater)
	require.NoError(t, err)

	var sum float64
	for _, line := range quote.Lines {
		sum += line.Amount
	}

	assert.Equal(t, quote.Total, sum)
	assert.Equal(t, 3, quote.Days)
}
