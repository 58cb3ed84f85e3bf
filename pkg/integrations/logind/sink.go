package logind

import (
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const (
	busName      = "org.freedesktop.login1"
	sessionPath  = "/org/freedesktop/login1/session/auto"
	sessionIface = "org.freedesktop.login1.Session"
)

// Sink writes the idle hint of the calling process's logind session.
// logind maintains IdleSinceHint itself: it is stamped whenever the hint
// flips to true, so the sink never writes it directly.
type Sink struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewSink connects to the system bus and resolves the caller's session
// object. The IdleHint property is probed once so an unreachable session
// manager surfaces at startup rather than on the first poll.
func NewSink() (*Sink, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to system D-Bus")
	}

	s := &Sink{
		conn: conn,
		obj:  conn.Object(busName, dbus.ObjectPath(sessionPath)),
	}

	if _, err := s.IdleHint(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "logind session unavailable")
	}

	return s, nil
}

// SetIdleHint asks logind to mark the session idle or not-idle. Repeated
// identical calls are harmless, but callers should dedupe to keep bus
// traffic down.
func (s *Sink) SetIdleHint(idle bool) error {
	call := s.obj.Call(sessionIface+".SetIdleHint", 0, idle)
	if call.Err != nil {
		return errors.Wrap(call.Err, "failed to set idle hint")
	}
	return nil
}

// IdleHint reads the session's current IdleHint property.
func (s *Sink) IdleHint() (bool, error) {
	variant, err := s.obj.GetProperty(sessionIface + ".IdleHint")
	if err != nil {
		return false, errors.Wrap(err, "failed to read IdleHint property")
	}

	hint, ok := variant.Value().(bool)
	if !ok {
		return false, errors.Errorf("unexpected IdleHint type %T", variant.Value())
	}
	return hint, nil
}

// IdleSince reads IdleSinceHint, the timestamp of the last transition to
// idle. Returns the zero time if the session has never been idle.
func (s *Sink) IdleSince() (time.Time, error) {
	variant, err := s.obj.GetProperty(sessionIface + ".IdleSinceHint")
	if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to read IdleSinceHint property")
	}

	usec, ok := variant.Value().(uint64)
	if !ok {
		return time.Time{}, errors.Errorf("unexpected IdleSinceHint type %T", variant.Value())
	}
	if usec == 0 {
		return time.Time{}, nil
	}
	return time.UnixMicro(int64(usec)), nil
}

// Close disconnects from the system bus.
func (s *Sink) Close() error {
	return s.conn.Close()
}
