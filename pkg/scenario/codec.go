package scenario

import (
	"strconv"
	"strings"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// Serialize renders the override map as the compact token form used in
// shareable links, e.g. "d23,r45,t67". Districts are emitted in
// ascending order so equal scenarios serialize identically.
func (s *Scenario) Serialize() string {
	if len(s.overrides) == 0 {
		return ""
	}

	var b strings.Builder
	for i, district := range s.Districts() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(prefixFor(s.overrides[district]))
		b.WriteString(strconv.Itoa(district))
	}
	return b.String()
}

// Parse rebuilds a scenario from its serialized form. Malformed tokens,
// unknown districts, and tokens restating a district's own baseline are
// dropped: a stale shared link degrades to fewer overrides instead of
// failing outright. Duplicate tokens for a district resolve last-wins.
func Parse(encoded string, baseline map[int]chamber.Party) *Scenario {
	s := New(baseline)
	for _, token := range strings.Split(encoded, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		status, ok := statusFor(token[0])
		if !ok {
			continue
		}
		num := token[1:]
		if num == "" || num[0] == '+' {
			// Atoi tolerates a leading sign; the token grammar does not.
			continue
		}
		district, err := strconv.Atoi(num)
		if err != nil || district <= 0 {
			continue
		}
		b, ok := baseline[district]
		if !ok || conflictsWithBaseline(status, b) {
			continue
		}

		s.overrides[district] = status
	}
	return s
}

func prefixFor(status Status) byte {
	switch status {
	case StatusFlippedDem:
		return 'd'
	case StatusFlippedRep:
		return 'r'
	default:
		return 't'
	}
}

func statusFor(prefix byte) (Status, bool) {
	switch prefix {
	case 'd':
		return StatusFlippedDem, true
	case 'r':
		return StatusFlippedRep, true
	case 't':
		return StatusTossup, true
	default:
		return StatusBaseline, false
	}
}
