package server

import (
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-trace-123", messageChan)

	logger.Infof("%d rays processed", 42)

	select {
	case msg := <-messageChan:
		if msg.Message != "42 rays processed" {
			t.Errorf("Expected message '42 rays processed', got '%s'", msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_Levels(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-trace-levels", messageChan)

	logger.Debug("sweep ", 3)
	logger.Notice("trace cancelled")
	logger.Warning("ray density clamped")
	logger.Error("scene invalid")

	expected := []ConsoleMessage{
		{Level: "debug", Message: "sweep 3"},
		{Level: "notice", Message: "trace cancelled"},
		{Level: "warning", Message: "ray density clamped"},
		{Level: "error", Message: "scene invalid"},
	}
	for i, want := range expected {
		select {
		case msg := <-messageChan:
			if msg.Level != want.Level || msg.Message != want.Message {
				t.Errorf("Message %d: expected %s '%s', got %s '%s'", i, want.Level, want.Message, msg.Level, msg.Message)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-trace-789", messageChan)

	logger.Info("Message 1")
	done := make(chan struct{})
	go func() {
		// Further messages are dropped instead of blocking
		logger.Info("Message 2")
		logger.Info("Message 3")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Logger blocked on a full channel")
	}

	msg := <-messageChan
	if msg.Message != "Message 1" {
		t.Errorf("Expected the first message to be kept, got '%s'", msg.Message)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-trace-nil", nil)

	// Must not panic
	logger.Infof("Test message with nil channel")
}
