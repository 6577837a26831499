package ordering

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/abhisek/italiano/internal/answer"
	"github.com/abhisek/italiano/internal/stats"
)

// Mode selects how the visible list is ordered.
type Mode string

const (
	ModeNone             Mode = "none"
	ModeAlphabetical     Mode = "alphabetical"
	ModeRandom           Mode = "random"
	ModeMostErrors       Mode = "most-errors"
	ModeWorstPerformance Mode = "worst-performance"
)

// Modes lists every mode in the order the UI cycles through them.
var Modes = []Mode{ModeNone, ModeAlphabetical, ModeRandom, ModeMostErrors, ModeWorstPerformance}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	i := slices.Index(Modes, m)
	return Modes[(i+1)%len(Modes)]
}

// UsesStatistics reports whether the order depends on statistics.
func (m Mode) UsesStatistics() bool {
	return m == ModeMostErrors || m == ModeWorstPerformance
}

// Cap limits how many items are shown. All (zero) shows everything.
type Cap int

// All disables the display cap.
const All Cap = 0

// Caps lists the caps the UI cycles through.
var Caps = []Cap{10, 25, 50, All}

// ParseCap parses "all" or a positive integer.
func ParseCap(s string) (Cap, error) {
	if strings.EqualFold(s, "all") {
		return All, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid display cap %q: want a positive number or \"all\"", s)
	}
	return Cap(n), nil
}

func (c Cap) String() string {
	if c == All {
		return "all"
	}
	return strconv.Itoa(int(c))
}

// Next returns the cap after c in Caps, wrapping around. Caps not in the
// list move to the first entry.
func (c Cap) Next() Cap {
	i := slices.Index(Caps, c)
	return Caps[(i+1)%len(Caps)]
}

// State is the learner-controlled ordering configuration.
type State struct {
	Mode Mode
	Cap  Cap
	Seed int64
}

type options struct {
	lang   language.Tag
	filter string
}

// Option configures Apply.
type Option func(*options)

// WithLanguage sets the collation language for alphabetical ordering.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) { o.lang = tag }
}

// WithFilter keeps only items whose prompt contains q, ignoring case and
// accents. The filter runs before ordering and capping.
func WithFilter(q string) Option {
	return func(o *options) { o.filter = q }
}

// Apply returns a new slice with items filtered, ordered by st.Mode and capped
// to st.Cap. Ties keep their source order for every mode but random.
func Apply[T any](items []T, prompt func(T) string, stat func(T) stats.Record, st State, opts ...Option) []T {
	o := options{lang: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]T, 0, len(items))
	if q := answer.Normalize(o.filter); q != "" {
		for _, it := range items {
			if strings.Contains(answer.Normalize(prompt(it)), q) {
				out = append(out, it)
			}
		}
	} else {
		out = append(out, items...)
	}

	switch st.Mode {
	case ModeAlphabetical:
		col := collate.New(o.lang, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b T) int {
			return col.CompareString(prompt(a), prompt(b))
		})
	case ModeRandom:
		Shuffle(out, st.Seed)
	case ModeMostErrors:
		slices.SortStableFunc(out, func(a, b T) int {
			return stat(b).Wrong - stat(a).Wrong
		})
	case ModeWorstPerformance:
		slices.SortStableFunc(out, func(a, b T) int {
			return stat(b).Score() - stat(a).Score()
		})
	}

	if st.Cap > All && int(st.Cap) < len(out) {
		out = out[:st.Cap]
	}
	return out
}
