package command

import (
	"time"

	"github.com/on-the-ground/memo_ive_go/demo/funcs"
	"github.com/on-the-ground/memo_ive_go/memo"
	"github.com/rickb777/date/v2/timespan"
)

// Report is the outcome of timing the same call several times against one
// memoized instance.
type Report struct {
	Result      int
	Spans       []timespan.TimeSpan
	Invocations int64
	Entries     int
}

// Measure calls in with args runs times. The first run pays for the
// computation; later runs are answered from the table.
func Measure(in *funcs.Instance, args memo.Args, runs int) (Report, error) {
	var r Report
	for range runs {
		start := time.Now()
		v, err := in.Call(args)
		end := time.Now()
		if err != nil {
			return r, err
		}
		r.Result = v
		r.Spans = append(r.Spans, timespan.BetweenTimes(start, end))
	}
	r.Invocations = in.Invocations()
	r.Entries = in.Entries()
	return r, nil
}
