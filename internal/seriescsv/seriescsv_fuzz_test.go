package seriescsv

import (
	"errors"
	"testing"

	"github.com/mfaulds/driftline/internal/contract"
)

// FuzzDecode fuzzes the upload decoder with arbitrary CSV bytes.
func FuzzDecode(f *testing.F) {
	seeds := []string{
		"timestamp,value\nt1,1\nt2,2\nt3,3\nt4,4\nt5,5\nt6,6\nt7,7\nt8,8\nt9,9\nt10,10\n",
		"",
		"   \n",
		"value\n1\n2\n3\n",
		"timestamp,value\nt1,not-a-number\nt2,2\n",
		"a,b,c\n1,2,3\n4,5,6\n",
		"timestamp,value\n\"broken,1\nt2,2\n",
		"timestamp,value\nt1,1e308\nt2,-1e308\nt3,0.0000001\n",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed), 10)
	}

	f.Fuzz(func(t *testing.T, raw []byte, minLength int) {
		ts, err := Decode(raw, minLength)

		if err != nil {
			// Decode failures stay inside the input-error taxonomy.
			if !errors.Is(err, contract.ErrMalformedInput) && !errors.Is(err, contract.ErrInsufficientData) {
				t.Fatalf("Decode returned an unclassified error: %v", err)
			}
			return
		}

		if len(ts.Values) < minLength {
			t.Fatalf("Decode accepted %d samples below the %d floor", len(ts.Values), minLength)
		}
		if ts.Labels != nil && len(ts.Labels) != len(ts.Values) {
			t.Fatalf("Decode produced %d labels for %d values", len(ts.Labels), len(ts.Values))
		}
	})
}
