package resource

import (
	"errors"
	"testing"
)

func TestBundleSubtractAllIsAtomic(t *testing.T) {
	b := FromMap(map[Kind]int{Brick: 2, Grain: 1})
	before := b

	err := b.SubtractAll(FromMap(map[Kind]int{Brick: 1, Grain: 2}))
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("SubtractAll() error = %v, want ErrInsufficient", err)
	}
	if b != before {
		t.Errorf("bundle changed on failed SubtractAll: got %s, want %s", b, before)
	}
}

func TestBundleRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		start Bundle
		delta Bundle
	}{
		{"empty plus empty", Bundle{}, Bundle{}},
		{"empty plus some", Bundle{}, FromMap(map[Kind]int{Ore: 3, Wool: 1})},
		{"some plus some", FromMap(map[Kind]int{Brick: 4}), FromMap(map[Kind]int{Brick: 2, Lumber: 5})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.start
			b.AddAll(tt.delta)
			if err := b.SubtractAll(tt.delta); err != nil {
				t.Fatalf("SubtractAll() failed: %v", err)
			}
			if b != tt.start {
				t.Errorf("round trip = %s, want %s", b, tt.start)
			}
		})
	}
}

func TestBundleSequentialSubtractNeedsSum(t *testing.T) {
	b := Of(Grain, 3)
	x := Of(Grain, 2)
	y := Of(Grain, 2)

	if err := b.SubtractAll(x); err != nil {
		t.Fatalf("first SubtractAll() failed: %v", err)
	}
	if err := b.SubtractAll(y); err == nil {
		t.Fatal("second SubtractAll() succeeded without x+y available")
	}
}

func TestBundleArithmetic(t *testing.T) {
	a := FromMap(map[Kind]int{Brick: 1, Ore: 2})
	b := FromMap(map[Kind]int{Ore: 1, Wool: 4})

	sum := Combine(a, b)
	if sum.Total() != 8 || sum.Get(Ore) != 3 {
		t.Errorf("Combine() = %s", sum)
	}
	if got := a.Multiply(2); got.Get(Ore) != 4 || got.Get(Brick) != 2 {
		t.Errorf("Multiply(2) = %s", got)
	}
	if got := a.Without(b); got != FromMap(map[Kind]int{Brick: 1, Ore: 1}) {
		t.Errorf("Without() = %s", got)
	}
	if !sum.HasAll(a) || a.HasAll(sum) {
		t.Error("HasAll() mismatch")
	}
	if !(Bundle{}).IsEmpty() {
		t.Error("zero bundle is not empty")
	}
}

func TestBundleUnit(t *testing.T) {
	b := FromMap(map[Kind]int{Lumber: 2, Ore: 1})

	want := []Kind{Lumber, Lumber, Ore}
	for i, k := range want {
		got, ok := b.Unit(i)
		if !ok || got != k {
			t.Errorf("Unit(%d) = %s, %v; want %s", i, got, ok, k)
		}
	}
	if _, ok := b.Unit(3); ok {
		t.Error("Unit(3) should be out of range")
	}
}

func TestParseBundle(t *testing.T) {
	tests := []struct {
		in      string
		want    Bundle
		wantErr bool
	}{
		{"brick:1,grain:2", FromMap(map[Kind]int{Brick: 1, Grain: 2}), false},
		{"ore ore wool", FromMap(map[Kind]int{Ore: 2, Wool: 1}), false},
		{"Lumber=3", Of(Lumber, 3), false},
		{"", Bundle{}, false},
		{"gold:1", Bundle{}, true},
		{"brick:-1", Bundle{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBundle(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBundle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBundle(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
