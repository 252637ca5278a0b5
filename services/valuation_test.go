package services

import "testing"

func TestPostMoneyValuation(t *testing.T) {
	pre := func(v float64) *float64 { return &v }

	cases := []struct {
		name   string
		pre    *float64
		amount int64
		want   float64
	}{
		{"nil pre, zero amount", nil, 0, 0.0},
		{"pre plus amount", pre(100000.0), 50000, 150000.0},
		{"nil pre counts as zero", nil, 50000, 50000.0},
		{"zero pre", pre(0.0), 20000, 20000.0},
		{"negative inputs propagate", pre(-1000.0), 500, -500.0},
	}
	for _, c := range cases {
		if got := PostMoneyValuation(c.pre, c.amount); got != c.want {
			t.Fatalf("%s: PostMoneyValuation = %v, want %v", c.name, got, c.want)
		}
	}
}
