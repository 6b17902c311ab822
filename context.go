package ecm

import (
	"fmt"
	"time"
)

// logCategory tags a Context log entry's severity.
type logCategory int

const (
	logProgress logCategory = 1 + iota
	logWarning
	logError
)

// maxMessages bounds BuildContext's log; messages logged after it is full
// are dropped (spec.md §5: build diagnostics
// are bounded, not unbounded, to keep a pipeline run's memory footprint
// predictable). Mirrors the teacher's MAX_MESSAGES (buildcontext.go).
const maxMessages = 1000

// Contexter is the logging/timing capability every build stage takes
// (spec.md §5, "Every stage logs through an injected capability").
// Adapted from the teacher's rcContexter (rccontext.go): same doLog/
// doStartTimer/doStopTimer shape, generalised from Recast's log
// categories and timer labels to the ECM's.
type Contexter interface {
	doLog(category logCategory, format string, args ...interface{})
	doStartTimer(label TimerLabel)
	doStopTimer(label TimerLabel)
	doAccumulatedTime(label TimerLabel) time.Duration
}

// Context wraps a Contexter with the Progressf/Warningf/Errorf and
// StartTimer/StopTimer/AccumulatedTime convenience API every build stage
// uses (spec.md §5). Logging and timing can each be independently
// disabled, exactly as in the teacher's rcContext.
type Context struct {
	logEnabled   bool
	timerEnabled bool
	Contexter
}

// NewContext returns a Context wrapping ctxer, with logging and timing
// enabled according to enabled.
func NewContext(enabled bool, ctxer Contexter) *Context {
	return &Context{logEnabled: enabled, timerEnabled: enabled, Contexter: ctxer}
}

func (c *Context) log(category logCategory, format string, args ...interface{}) {
	if !c.logEnabled {
		return
	}
	c.doLog(category, format, args...)
}

// Progressf logs a progress message.
func (c *Context) Progressf(format string, args ...interface{}) { c.log(logProgress, format, args...) }

// Warningf logs a warning (spec.md §9's max_grid_neis diagnostic goes
// through this).
func (c *Context) Warningf(format string, args ...interface{}) { c.log(logWarning, format, args...) }

// Errorf logs an error.
func (c *Context) Errorf(format string, args ...interface{}) { c.log(logError, format, args...) }

// StartTimer starts the named stage timer, if timing is enabled.
func (c *Context) StartTimer(label TimerLabel) {
	if c.timerEnabled {
		c.doStartTimer(label)
	}
}

// StopTimer stops the named stage timer, if timing is enabled.
func (c *Context) StopTimer(label TimerLabel) {
	if c.timerEnabled {
		c.doStopTimer(label)
	}
}

// AccumulatedTime returns the named stage's total accumulated time, or
// -1 if timing is disabled.
func (c *Context) AccumulatedTime(label TimerLabel) time.Duration {
	if !c.timerEnabled {
		return -1
	}
	return c.doAccumulatedTime(label)
}

// dumper is the subset of BuildContext's API that dumps its log, kept as
// an unexported optional interface rather than added to Contexter: most
// Contexter implementations (tests, no-op loggers) have no log to dump.
type dumper interface {
	DumpLog(header string, args ...interface{})
}

// DumpLog prints the wrapped Contexter's accumulated log, if it supports
// dumping one (as *BuildContext does); otherwise it's a no-op.
func (c *Context) DumpLog(header string, args ...interface{}) {
	if d, ok := c.Contexter.(dumper); ok {
		d.DumpLog(header, args...)
	}
}

// BuildContext is Context's concrete Contexter: an in-memory log that
// keeps the first maxMessages messages plus per-stage time accumulators. Adapted from the teacher's
// BuildContext (buildcontext.go).
type BuildContext struct {
	start [maxTimers]time.Time
	acc   [maxTimers]time.Duration

	messages     [maxMessages]string
	messageCount int
}

// NewBuildContext returns a *Context wrapping a fresh BuildContext.
func NewBuildContext(enabled bool) *Context {
	return NewContext(enabled, &BuildContext{})
}

// DumpLog prints every accumulated log message, preceded by header
// (mirrors the teacher's dumpLog).
func (b *BuildContext) DumpLog(header string, args ...interface{}) {
	fmt.Printf(header+"\n", args...)
	for i := 0; i < b.messageCount; i++ {
		fmt.Println(b.messages[i])
	}
}

// LogCount returns the number of messages currently stored.
func (b *BuildContext) LogCount() int { return b.messageCount }

// LogText returns the i-th stored message.
func (b *BuildContext) LogText(i int) string { return b.messages[i] }

func (b *BuildContext) doLog(category logCategory, format string, args ...interface{}) {
	if b.messageCount >= maxMessages {
		return
	}
	msg := fmt.Sprintf(format, args...)
	switch category {
	case logProgress:
		msg = "PROG " + msg
	case logWarning:
		msg = "WARN " + msg
	case logError:
		msg = "ERR " + msg
	}
	b.messages[b.messageCount] = msg
	b.messageCount++
}

func (b *BuildContext) doStartTimer(label TimerLabel) {
	b.start[label] = time.Now()
}

func (b *BuildContext) doStopTimer(label TimerLabel) {
	b.acc[label] += time.Since(b.start[label])
}

func (b *BuildContext) doAccumulatedTime(label TimerLabel) time.Duration {
	return b.acc[label]
}
