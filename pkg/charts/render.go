package charts

import "github.com/worldpulse/devdash/pkg/dataset"

// Render produces both chart specifications from the table and the current
// selection. It is a pure function over read-only state: the event-loop
// mechanics of how clicks arrive are the caller's concern.
func Render(t *dataset.Table, sel Selection, cfg Config) (scatter, bar *Figure) {
	view := t.Filter(sel.Codes())
	return BuildScatter(view, cfg), BuildBar(view, cfg)
}
