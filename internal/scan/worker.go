package scan

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/michaelscutari/dutop/internal/probe"
)

// measureAll measures every child on a pool bounded by the worker count.
// Each goroutine writes only its own slot, so results line up with the
// input regardless of completion order.
func (s *Scanner) measureAll(children []child, dev probe.Device) []uint64 {
	sizes := make([]uint64, len(children))
	total := len(children)

	var done atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.opts.workers())

	for i := range children {
		c := children[i]
		g.Go(func() error {
			if c.info != nil {
				sizes[i] = s.probe.MeasureOn(c.path, c.info, dev)
			}
			n := int(done.Add(1))
			if s.opts.Progress != nil {
				s.opts.Progress(c.name, n, total)
			}
			return nil
		})
	}

	// Measurements never return errors; Wait is only the join barrier.
	_ = g.Wait()
	return sizes
}
