package logger

// lineRing keeps the most recent lines written to a log file.
type lineRing struct {
	lines   []string
	next    int
	count   int
	written int
}

func newLineRing(capacity int) *lineRing {
	return &lineRing{lines: make([]string, max(capacity, 1))}
}

// push records a line, overwriting the oldest once full.
func (r *lineRing) push(line string) {
	r.lines[r.next] = line
	r.next = (r.next + 1) % len(r.lines)
	r.count = min(r.count+1, len(r.lines))
	r.written++
}

// snapshot returns the kept lines oldest first.
func (r *lineRing) snapshot() []string {
	out := make([]string, 0, r.count)
	start := (r.next - r.count + len(r.lines)) % len(r.lines)

	for i := range r.count {
		out = append(out, r.lines[(start+i)%len(r.lines)])
	}

	return out
}
