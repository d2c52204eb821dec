package output

import "io"

// Tee duplicates a report stream to a secondary sink, typically an
// export file. The primary sink (the console) is authoritative: its
// write result is what callers see. The secondary sink is best-effort —
// its first error is remembered and further writes to it stop, but the
// primary stream is never disturbed. A full disk must not cost the user
// the console copy of their report.
type Tee struct {
	primary   io.Writer
	secondary io.Writer
	n         int64
	err       error
}

// NewTee returns a Tee writing to primary and mirroring to secondary.
// A nil secondary degrades to a plain pass-through.
func NewTee(primary, secondary io.Writer) *Tee {
	return &Tee{primary: primary, secondary: secondary}
}

// Write sends p to the primary sink, then mirrors it to the secondary
// sink unless that sink already failed. The returned count and error
// reflect the primary sink only.
func (t *Tee) Write(p []byte) (int, error) {
	n, err := t.primary.Write(p)
	if t.secondary != nil && t.err == nil {
		m, serr := t.secondary.Write(p)
		t.n += int64(m)
		if serr != nil {
			t.err = serr
		} else if m < len(p) {
			t.err = io.ErrShortWrite
		}
	}
	return n, err
}

// Err returns the first error the secondary sink produced, or nil.
func (t *Tee) Err() error {
	return t.err
}

// Mirrored returns how many bytes reached the secondary sink.
func (t *Tee) Mirrored() int64 {
	return t.n
}
