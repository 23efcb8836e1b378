package scoring

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		realPrice float64
		rating    float64
		orders    int
		want      int
	}{
		{
			name:      "typical mid-range product",
			realPrice: 50,
			rating:    4.5,
			orders:    1000,
			want:      62, // 22.5 + 36 + 3
		},
		{
			name:      "perfect inputs hit the ceiling",
			realPrice: 0,
			rating:    5,
			orders:    10000,
			want:      100,
		},
		{
			name:      "worthless product floors at zero",
			realPrice: 300,
			rating:    0,
			orders:    0,
			want:      0,
		},
		{
			name:      "price sub-score saturates at 200",
			realPrice: 200,
			rating:    2.5,
			orders:    20000,
			want:      50, // 0 + 20 + 30
		},
		{
			name:      "price beyond saturation adds no further penalty",
			realPrice: 1000,
			rating:    2.5,
			orders:    20000,
			want:      50,
		},
		{
			name:      "orders sub-score saturates at 10000",
			realPrice: 100,
			rating:    4,
			orders:    5000,
			want:      62, // 15 + 32 + 15
		},
		{
			name:      "free product with no history",
			realPrice: 0,
			rating:    0,
			orders:    0,
			want:      30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.realPrice, tt.rating, tt.orders)
			if got != tt.want {
				t.Errorf("Score(%v, %v, %d) = %d, want %d", tt.realPrice, tt.rating, tt.orders, got, tt.want)
			}
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	first := Score(37.5, 4.2, 850)
	for i := 0; i < 10; i++ {
		if got := Score(37.5, 4.2, 850); got != first {
			t.Fatalf("Score is not deterministic: got %d then %d", first, got)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		shipping float64
		rating   float64
		orders   int
		wantErr  bool
	}{
		{name: "all valid", price: 10, shipping: 2, rating: 4.5, orders: 100},
		{name: "zero everything is valid", price: 0, shipping: 0, rating: 0, orders: 0},
		{name: "negative price", price: -1, shipping: 0, rating: 4, orders: 0, wantErr: true},
		{name: "negative shipping", price: 1, shipping: -0.5, rating: 4, orders: 0, wantErr: true},
		{name: "rating above five", price: 1, shipping: 0, rating: 5.1, orders: 0, wantErr: true},
		{name: "negative rating", price: 1, shipping: 0, rating: -0.1, orders: 0, wantErr: true},
		{name: "negative orders", price: 1, shipping: 0, rating: 4, orders: -1, wantErr: true},
		{name: "NaN price", price: math.NaN(), shipping: 0, rating: 4, orders: 0, wantErr: true},
		{name: "infinite shipping", price: 1, shipping: math.Inf(1), rating: 4, orders: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.price, tt.shipping, tt.rating, tt.orders)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
