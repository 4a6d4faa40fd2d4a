package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		want OrderStatus
	}{
		{name: "processing advances to shipped", from: StatusProcessing, want: StatusShipped},
		{name: "shipped advances to delivered", from: StatusShipped, want: StatusDelivered},
		{name: "delivered stays delivered", from: StatusDelivered, want: StatusDelivered},
		{name: "unknown status resolves to delivered", from: OrderStatus("Refunded"), want: StatusDelivered},
		{name: "empty status resolves to delivered", from: OrderStatus(""), want: StatusDelivered},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NextStatus(tc.from))
		})
	}
}

func TestNextStatusTerminalIdempotent(t *testing.T) {
	s := StatusProcessing
	s = NextStatus(s)
	s = NextStatus(s)
	require.Equal(t, StatusDelivered, s)

	// Repeated application at the terminal state is a fixed point.
	require.Equal(t, StatusDelivered, NextStatus(s))
}

func TestUserAge(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{name: "birthday passed this year", dob: time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC), want: 26},
		{name: "birthday later this year", dob: time.Date(2000, 9, 1, 0, 0, 0, 0, time.UTC), want: 25},
		{name: "birthday today", dob: time.Date(2006, 6, 15, 0, 0, 0, 0, time.UTC), want: 20},
		{name: "birthday tomorrow", dob: time.Date(2006, 6, 16, 0, 0, 0, 0, time.UTC), want: 19},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := User{DOB: tc.dob}
			require.Equal(t, tc.want, u.Age(now))
		})
	}
}
