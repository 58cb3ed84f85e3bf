package x11

import (
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"

	"github.com/pkg/errors"
)

// Source reads the display's idle counter via the MIT-SCREEN-SAVER
// extension. The connection is opened once and reused for every poll.
type Source struct {
	conn *xgb.Conn
	root xproto.Drawable
}

// NewSource connects to the X server named by $DISPLAY and initializes the
// screensaver extension. Failure here is fatal for the process: per-poll
// retries never re-establish the connection.
func NewSource() (*Source, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X11 server")
	}

	if err := screensaver.Init(conn); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "MIT-SCREEN-SAVER extension unavailable")
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	return &Source{
		conn: conn,
		root: xproto.Drawable(root),
	}, nil
}

// IdleDuration returns elapsed time since the last user input event on the
// display. The counter resets to near-zero on any mouse or key event.
func (s *Source) IdleDuration() (time.Duration, error) {
	reply, err := screensaver.QueryInfo(s.conn, s.root).Reply()
	if err != nil {
		return 0, errors.Wrap(err, "failed to query screensaver info")
	}
	return time.Duration(reply.MsSinceUserInput) * time.Millisecond, nil
}

// Close disconnects from the X server.
func (s *Source) Close() error {
	s.conn.Close()
	return nil
}
