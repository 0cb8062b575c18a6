package stock

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAggregatorCombine(t *testing.T) {
	tests := []struct {
		name     string
		egg      string
		seedGear string
		expected string
	}{
		{
			name:     "both empty",
			expected: "",
		},
		{
			name:     "seed gear only",
			seedGear: "gear report",
			expected: "gear report",
		},
		{
			name:     "cached egg only returned unmodified",
			egg:      "egg report",
			expected: "egg report",
		},
		{
			name:     "both present seed gear first",
			egg:      "egg report",
			seedGear: "gear report",
			expected: "gear report\n\negg report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAggregator()
			if tt.egg != "" {
				a.UpdateEgg(tt.egg)
			}

			if got := a.Combine(tt.seedGear); got != tt.expected {
				t.Errorf("Combine(%q) = %q, want %q", tt.seedGear, got, tt.expected)
			}
		})
	}
}

func TestAggregatorUpdateOverwritesWholesale(t *testing.T) {
	a := NewAggregator()
	a.UpdateEgg("first egg report")
	a.UpdateEgg("second egg report")

	if got := a.Combine(""); got != "second egg report" {
		t.Errorf("Combine() = %q, want latest egg report only", got)
	}
}

func TestAggregatorCombineDoesNotClearCache(t *testing.T) {
	a := NewAggregator()
	a.UpdateEgg("egg report")

	_ = a.Combine("gear report")

	if got := a.Combine("gear report"); got != "gear report\n\negg report" {
		t.Errorf("second Combine() = %q, cache should survive reads", got)
	}
}

func TestAggregatorEggAge(t *testing.T) {
	a := NewAggregator()

	if _, ok := a.EggAge(time.Now()); ok {
		t.Fatal("EggAge() reported a cached report before any update")
	}

	a.UpdateEgg("egg report")

	age, ok := a.EggAge(time.Now().Add(time.Minute))
	if !ok {
		t.Fatal("EggAge() reported no cached report after update")
	}

	if age < time.Minute {
		t.Errorf("EggAge() = %v, want at least one minute", age)
	}
}

func TestAggregatorConcurrentAccess(t *testing.T) {
	a := NewAggregator()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()
			a.UpdateEgg(fmt.Sprintf("egg report %d", i))
		}(i)

		go func() {
			defer wg.Done()
			_ = a.Combine("gear report")
		}()
	}

	wg.Wait()

	if got := a.Combine(""); got == "" {
		t.Error("Combine() empty after concurrent updates")
	}
}
