package stock

import "testing"

func TestAdmit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		requested int
		stock     int
		want      int
		clamped   bool
	}{
		{name: "within stock", requested: 3, stock: 5, want: 3, clamped: false},
		{name: "exactly stock", requested: 5, stock: 5, want: 5, clamped: false},
		{name: "over stock", requested: 7, stock: 5, want: 5, clamped: true},
		{name: "zero stock", requested: 2, stock: 0, want: 0, clamped: true},
		{name: "negative request", requested: -1, stock: 5, want: 0, clamped: true},
		{name: "negative stock", requested: 1, stock: -3, want: 0, clamped: true},
		{name: "zero request", requested: 0, stock: 5, want: 0, clamped: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, clamped := Admit(tc.requested, tc.stock)
			if got != tc.want || clamped != tc.clamped {
				t.Fatalf("Admit(%d, %d) = (%d, %v), want (%d, %v)",
					tc.requested, tc.stock, got, clamped, tc.want, tc.clamped)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	t.Parallel()

	if Available(0) {
		t.Fatal("zero stock should not be available")
	}
	if !Available(1) {
		t.Fatal("positive stock should be available")
	}
}
