package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestComparablePropertyValidate(t *testing.T) {
	tests := []struct {
		name     string
		property ComparableProperty
		wantErr  string
	}{
		{
			name:     "valid sold",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindSold, SoldPrice: fptr(450000)},
		},
		{
			name:     "valid listing",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindListing, AskingPrice: fptr(400000)},
		},
		{
			name:     "valid rental",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindRental, MonthlyRent: fptr(2500)},
		},
		{
			name:     "unknown kind",
			property: ComparableProperty{Address: "1 Dame Street", Kind: "auction", AskingPrice: fptr(400000)},
			wantErr:  "invalid property kind",
		},
		{
			name:     "missing address",
			property: ComparableProperty{Kind: KindListing, AskingPrice: fptr(400000)},
			wantErr:  "address is required",
		},
		{
			name:     "no price at all",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindListing},
			wantErr:  "must carry a sold price, asking price or monthly rent",
		},
		{
			name:     "two price fields",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindListing, AskingPrice: fptr(400000), MonthlyRent: fptr(2500)},
			wantErr:  "exactly one price field",
		},
		{
			name:     "rental with asking price",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindRental, AskingPrice: fptr(400000)},
			wantErr:  "must carry monthly_rent",
		},
		{
			name:     "sold with asking price",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindSold, AskingPrice: fptr(400000)},
			wantErr:  "must carry sold_price",
		},
		{
			name:     "listing with sold price",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindListing, SoldPrice: fptr(400000)},
			wantErr:  "must carry asking_price",
		},
		{
			name:     "negative price",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindListing, AskingPrice: fptr(-1)},
			wantErr:  "negative asking_price",
		},
		{
			name:     "negative floor area",
			property: ComparableProperty{Address: "1 Dame Street", Kind: KindListing, AskingPrice: fptr(400000), FloorArea: fptr(-10)},
			wantErr:  "negative floor_area",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.property.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
