package reservation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Window
		want bool
	}{
		{"touching boundaries", Window{at(10, 0), at(11, 0)}, Window{at(11, 0), at(12, 0)}, false},
		{"partial overlap", Window{at(10, 0), at(11, 30)}, Window{at(11, 0), at(12, 0)}, true},
		{"contained", Window{at(10, 0), at(14, 0)}, Window{at(11, 0), at(12, 0)}, true},
		{"identical", Window{at(10, 0), at(11, 0)}, Window{at(10, 0), at(11, 0)}, true},
		{"disjoint", Window{at(8, 0), at(9, 0)}, Window{at(11, 0), at(12, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

// Random windows on a minute grid: Overlaps must agree with a brute-force
// check of shared minutes.
func TestWindowOverlapsRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randomWindow := func() (Window, int, int) {
		s := rng.Intn(240)
		e := s + 1 + rng.Intn(120)
		return Window{
			Start: base.Add(time.Duration(s) * time.Minute),
			End:   base.Add(time.Duration(e) * time.Minute),
		}, s, e
	}

	for i := 0; i < 2000; i++ {
		a, as, ae := randomWindow()
		b, bs, be := randomWindow()

		shared := false
		for m := as; m < ae; m++ {
			if m >= bs && m < be {
				shared = true
				break
			}
		}

		assert.Equal(t, shared, a.Overlaps(b), "a=[%d,%d) b=[%d,%d)", as, ae, bs, be)
	}
}
