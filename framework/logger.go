package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is satisfied by *log.Logger and *logrus.Logger.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

// CapturedMessage is one debug line. Source is the label of the fixture method that
// produced it, or empty for messages that did not come from a fixture.
type CapturedMessage struct {
	Time    time.Time
	Source  string
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger keeps messages in memory so they can be dumped after the fact, only for
// fixtures that turned out to fail.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
	now    func() time.Time
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.capture("", fmt.Sprintf(message, args...))
}

func (l *CapturingLogger) capture(source, message string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	l.output = append(l.output, CapturedMessage{Time: now(), Source: source, Message: message})
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes one line per message, each starting with prefix. Messages from a fixture
// method are grouped under a line naming it whenever the source changes.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	source := ""
	for _, m := range output {
		if m.Source != source {
			source = m.Source
			if source != "" {
				fmt.Fprintf(dest, "%s%s\n", prefix, source)
			}
		}
		indent := ""
		if source != "" {
			indent = "  "
		}
		fmt.Fprintf(dest, "%s%s[%s] %s\n",
			prefix,
			indent,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
