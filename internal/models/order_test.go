package models

import "testing"

func TestDeriveOrderStatus(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  OrderStatus
	}{
		{
			name: "no items",
			want: OrderPending,
		},
		{
			name:  "none delivered",
			items: []OrderItem{{Status: ItemPending}, {Status: ItemPending}},
			want:  OrderPending,
		},
		{
			name:  "some delivered",
			items: []OrderItem{{Status: ItemDelivered}, {Status: ItemPending}},
			want:  OrderPartial,
		},
		{
			name:  "all delivered",
			items: []OrderItem{{Status: ItemDelivered}, {Status: ItemDelivered}},
			want:  OrderDelivered,
		},
		{
			name:  "single delivered item",
			items: []OrderItem{{Status: ItemDelivered}},
			want:  OrderDelivered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveOrderStatus(tt.items); got != tt.want {
				t.Errorf("DeriveOrderStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}
