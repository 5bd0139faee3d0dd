package truncate

import "strings"

// keepHead keeps as many leading lines as fit, followed by the marker.
// If not even the first line fits, it is cut mid-line.
func (t *Truncator) keepHead(text string, maxTokens int) string {
	lines := strings.Split(text, "\n")
	n := largest(len(lines), func(k int) bool {
		return t.fits(joinLines(strings.Join(lines[:k], "\n"), t.marker), maxTokens)
	})
	if n > 0 {
		return joinLines(strings.Join(lines[:n], "\n"), t.marker)
	}

	runes := []rune(text)
	r := largest(len(runes), func(k int) bool {
		return t.fits(string(runes[:k])+t.marker, maxTokens)
	})
	return string(runes[:r]) + t.marker
}

// keepTail keeps as many trailing lines as fit, preceded by the marker.
func (t *Truncator) keepTail(text string, maxTokens int) string {
	lines := strings.Split(text, "\n")
	n := largest(len(lines), func(k int) bool {
		return t.fits(joinLines(t.marker, strings.Join(lines[len(lines)-k:], "\n")), maxTokens)
	})
	if n > 0 {
		return joinLines(t.marker, strings.Join(lines[len(lines)-n:], "\n"))
	}

	runes := []rune(text)
	r := largest(len(runes), func(k int) bool {
		return t.fits(t.marker+string(runes[len(runes)-k:]), maxTokens)
	})
	return t.marker + string(runes[len(runes)-r:])
}

// keepEnds grows the kept head and tail one line at a time, alternating,
// until neither can grow.
func (t *Truncator) keepEnds(text string, maxTokens int) string {
	lines := strings.Split(text, "\n")
	compose := func(head, tail int) string {
		return joinLines(
			strings.Join(lines[:head], "\n"),
			t.marker,
			strings.Join(lines[len(lines)-tail:], "\n"),
		)
	}

	head, tail := 0, 0
	for {
		grew := false
		if head+tail < len(lines) && t.fits(compose(head+1, tail), maxTokens) {
			head++
			grew = true
		}
		if head+tail < len(lines) && t.fits(compose(head, tail+1), maxTokens) {
			tail++
			grew = true
		}
		if !grew {
			break
		}
	}

	if head == 0 && tail == 0 {
		return t.keepHead(text, maxTokens)
	}
	return compose(head, tail)
}

// joinLines joins the non-empty parts with newlines.
func joinLines(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// largest returns the largest k in [0, n] for which ok(k) holds, assuming
// ok is true up to some point and false after it. Returns 0 if ok(1) fails.
func largest(n int, ok func(k int) bool) int {
	low, high := 0, n
	for low < high {
		mid := (low + high + 1) / 2
		if ok(mid) {
			low = mid
		} else {
			high = mid - 1
		}
	}
	return low
}
