package server

import (
	"fmt"
	"time"

	"github.com/df07/go-ray-optics/pkg/log"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice", "warning", "error"
}

// WebLogger implements log.Logger by forwarding messages to a console channel
// as well as the server log
type WebLogger struct {
	traceID     string
	base        log.Logger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific trace
func NewWebLogger(traceID string, consoleChan chan<- ConsoleMessage) log.Logger {
	return &WebLogger{
		traceID:     traceID,
		base:        log.New("web"),
		consoleChan: consoleChan,
	}
}

func (wl *WebLogger) send(level, message string) {
	if wl.consoleChan == nil {
		return
	}
	// Never block the tracer on a slow client
	select {
	case wl.consoleChan <- ConsoleMessage{Message: message, Timestamp: time.Now(), Level: level}:
	default:
	}
}

func (wl *WebLogger) Debug(v ...interface{}) {
	wl.Debugf("%s", fmt.Sprint(v...))
}

func (wl *WebLogger) Debugf(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	wl.base.Debugf("[%s] %s", wl.traceID, message)
	wl.send("debug", message)
}

func (wl *WebLogger) Info(v ...interface{}) {
	wl.Infof("%s", fmt.Sprint(v...))
}

func (wl *WebLogger) Infof(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	wl.base.Infof("[%s] %s", wl.traceID, message)
	wl.send("info", message)
}

func (wl *WebLogger) Notice(v ...interface{}) {
	wl.Noticef("%s", fmt.Sprint(v...))
}

func (wl *WebLogger) Noticef(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	wl.base.Noticef("[%s] %s", wl.traceID, message)
	wl.send("notice", message)
}

func (wl *WebLogger) Warning(v ...interface{}) {
	wl.Warningf("%s", fmt.Sprint(v...))
}

func (wl *WebLogger) Warningf(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	wl.base.Warningf("[%s] %s", wl.traceID, message)
	wl.send("warning", message)
}

func (wl *WebLogger) Error(v ...interface{}) {
	wl.Errorf("%s", fmt.Sprint(v...))
}

func (wl *WebLogger) Errorf(format string, v ...interface{}) {
	message := fmt.Sprintf(format, v...)
	wl.base.Errorf("[%s] %s", wl.traceID, message)
	wl.send("error", message)
}
