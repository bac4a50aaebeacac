package wire

import (
	"bytes"
	"io"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	events := []Event{
		NewKeyEvent(KeyA, Press),
		NewKeyEvent(KeyA, Release),
		NewSyncEvent(),
	}
	for _, ev := range events {
		if err := w.Write(ev); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	r := NewReader(&buf)
	for i, want := range events {
		got, err := r.Next()
		if err != nil {
			t.Fatalf("Next(%d): %v", i, err)
		}
		if got.Type != want.Type || got.Code != want.Code || got.Value != want.Value {
			t.Errorf("event %d: got %+v, want %+v", i, got, want)
		}
	}

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next after exhaustion: got %v, want io.EOF", err)
	}
}

func TestReaderShortRecordIsError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}))
	if _, err := r.Next(); err == nil {
		t.Error("expected an error for a short/truncated record")
	}
}

func TestIsKeyPressAndIsRelease(t *testing.T) {
	press := NewKeyEvent(KeyA, Press)
	if !press.IsKeyPress() {
		t.Error("press event should report IsKeyPress")
	}
	if press.IsRelease() {
		t.Error("press event should not report IsRelease")
	}

	release := NewKeyEvent(KeyA, Release)
	if release.IsKeyPress() {
		t.Error("release event should not report IsKeyPress")
	}
	if !release.IsRelease() {
		t.Error("release event should report IsRelease")
	}

	repeat := NewKeyEvent(KeyA, Repeat)
	if repeat.IsKeyPress() {
		t.Error("repeat event should not count as IsKeyPress")
	}

	syn := NewSyncEvent()
	if syn.IsKeyPress() || syn.IsRelease() {
		t.Error("EV_SYN event should be neither a press nor a release")
	}
}
