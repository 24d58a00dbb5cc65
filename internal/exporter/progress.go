package exporter

// ProgressEvent 导出进度事件
type ProgressEvent struct {
	Percent int
	Stage   string
}

// progressReporter 只转发严格递增的百分比
type progressReporter struct {
	fn   func(ProgressEvent)
	last int
}

func newProgressReporter(fn func(ProgressEvent)) *progressReporter {
	return &progressReporter{fn: fn, last: -1}
}

func (p *progressReporter) report(percent int, stage string) {
	if p.fn == nil {
		return
	}
	percent = min(max(percent, 0), 100)
	if percent <= p.last {
		return
	}
	p.last = percent
	p.fn(ProgressEvent{Percent: percent, Stage: stage})
}
