// Package wire defines the on-the-wire input_event record shared with the
// host kernel's input pipeline, and the scancode/shift pair recorded for
// each letter the router sees.
package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// Scancode identifies a physical key, matching the host kernel's key codes.
type Scancode uint16

// EventType distinguishes key events from synchronisation markers.
type EventType uint16

const (
	EvSyn EventType = 0x00
	EvKey EventType = 0x01
)

// KeyState mirrors the kernel's input_event.value for EV_KEY events.
type KeyState int32

const (
	Release KeyState = 0
	Press   KeyState = 1
	Repeat  KeyState = 2
)

// SynReport is the code carried by a EV_SYN event that flushes a frame.
const SynReport = 0

// recordSize is the byte size of the kernel's struct input_event on a
// 64-bit Linux host: struct timeval (16 bytes: two 8-byte fields), plus
// u16 type, u16 code, s32 value.
const recordSize = 16 + 2 + 2 + 4

// Event is a single input_event record: a timestamp, a type, a code and a
// value. value is 0 for release, 1 for press, 2 for autorepeat on EV_KEY;
// it is unused (0) for EV_SYN.
type Event struct {
	Sec   int64
	Usec  int64
	Type  EventType
	Code  Scancode
	Value int32
}

// NewKeyEvent builds an EV_KEY event stamped with the current time.
func NewKeyEvent(code Scancode, state KeyState) Event {
	now := time.Now()
	return Event{
		Sec:   now.Unix(),
		Usec:  int64(now.Nanosecond() / 1000),
		Type:  EvKey,
		Code:  code,
		Value: int32(state),
	}
}

// NewSyncEvent builds the EV_SYN/SYN_REPORT event emitted after every
// injected key so downstream consumers flush the frame.
func NewSyncEvent() Event {
	now := time.Now()
	return Event{
		Sec:  now.Unix(),
		Usec: int64(now.Nanosecond() / 1000),
		Type: EvSyn,
		Code: SynReport,
	}
}

// IsKeyPress reports whether this is a fresh (non-repeat) EV_KEY press.
func (e Event) IsKeyPress() bool {
	return e.Type == EvKey && e.Value == int32(Press)
}

// IsRelease reports whether this is an EV_KEY release.
func (e Event) IsRelease() bool {
	return e.Type == EvKey && e.Value == int32(Release)
}

// Reader decodes a stream of Event records from the host's raw
// input_event byte stream.
type Reader struct {
	r   *bufio.Reader
	buf [recordSize]byte
}

// NewReader wraps r for reading; the underlying stream is left unbuffered
// by the caller (stdin), so Reader keeps its own small read buffer to
// avoid one syscall per field.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, recordSize*64)}
}

// Next reads one Event. It returns io.EOF when the upstream grabber closes
// its end of the pipe; any other error is a malformed or short read and
// should be treated as fatal by the caller.
func (d *Reader) Next() (Event, error) {
	if _, err := io.ReadFull(d.r, d.buf[:]); err != nil {
		return Event{}, err
	}
	return decode(d.buf[:]), nil
}

func decode(b []byte) Event {
	return Event{
		Sec:   int64(binary.LittleEndian.Uint64(b[0:8])),
		Usec:  int64(binary.LittleEndian.Uint64(b[8:16])),
		Type:  EventType(binary.LittleEndian.Uint16(b[16:18])),
		Code:  Scancode(binary.LittleEndian.Uint16(b[18:20])),
		Value: int32(binary.LittleEndian.Uint32(b[20:24])),
	}
}

func encode(e Event, b []byte) {
	binary.LittleEndian.PutUint64(b[0:8], uint64(e.Sec))
	binary.LittleEndian.PutUint64(b[8:16], uint64(e.Usec))
	binary.LittleEndian.PutUint16(b[16:18], uint16(e.Type))
	binary.LittleEndian.PutUint16(b[18:20], uint16(e.Code))
	binary.LittleEndian.PutUint32(b[20:24], uint32(e.Value))
}

// Writer encodes Event records bit-exactly to the downstream injector.
// Output is unbuffered: every Write issues its own syscall, matching the
// host's expectation that each event (and its trailing EV_SYN) reaches
// uinput promptly.
type Writer struct {
	w   io.Writer
	buf [recordSize]byte
}

// NewWriter wraps w for writing raw input_event records.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write emits a single event.
func (e *Writer) Write(ev Event) error {
	encode(ev, e.buf[:])
	n, err := e.w.Write(e.buf[:])
	if err != nil {
		return err
	}
	if n != recordSize {
		return fmt.Errorf("wire: short write (%d of %d bytes)", n, recordSize)
	}
	return nil
}
