package anvil

import (
	"fmt"
	"os"
)

// Freshness is the verdict of a staleness check.
type Freshness int

const (
	// Fresh means the output is at least as new as every input.
	Fresh Freshness = iota
	// Stale means the output is missing or older than some input.
	Stale
)

func (f Freshness) String() string {
	if f == Stale {
		return "stale"
	}
	return "fresh"
}

// NeedsRebuild compares the modification time of output against each
// input. A missing output is Stale. An unreadable input is an error —
// the oracle never guesses. Equal timestamps count as fresh, so a
// just-built output reports Fresh immediately even under
// second-granularity clocks.
//
// Every input is checked even after staleness is established, so the
// debug log names all of the reasons a rebuild is needed, not just the
// first.
func (e *Engine) NeedsRebuild(output string, inputs ...string) (Freshness, error) {
	out, err := os.Stat(output)
	if err != nil {
		if os.IsNotExist(err) {
			e.Log.Debugf("%s does not exist, rebuild needed", output)
			return Stale, nil
		}
		return Fresh, fmt.Errorf("stat %s: %w", output, err)
	}

	verdict := Fresh
	for _, in := range inputs {
		st, err := os.Stat(in)
		if err != nil {
			return Fresh, fmt.Errorf("stat %s: %w", in, err)
		}
		if st.ModTime().After(out.ModTime()) {
			e.Log.Debugf("%s is newer than %s, rebuild needed", in, output)
			verdict = Stale
		}
	}
	return verdict, nil
}
