package capture

import (
	"image"
	"time"

	"imagehelper/internal/errors"
	"imagehelper/internal/log"
)

// Session captures one region into Dir. Restore is always called once Run
// returns, whether or not anything was written.
type Session struct {
	Dir     string
	Grabber Grabber
	Delay   time.Duration // wait before grabbing so the overlay is gone
	Prefix  string
	Layout  string
	Restore func()

	Now   func() time.Time
	Sleep func(time.Duration)
}

// NewSession returns a session with the default naming and timing.
func NewSession(dir string, grabber Grabber, delay time.Duration, restore func()) *Session {
	return &Session{
		Dir:     dir,
		Grabber: grabber,
		Delay:   delay,
		Prefix:  DefaultPrefix,
		Layout:  DefaultLayout,
		Restore: restore,
		Now:     time.Now,
		Sleep:   time.Sleep,
	}
}

// Run grabs region and saves it. Empty regions are not grabbed. Failures
// are logged and returned; no partial file is left.
func (s *Session) Run(region image.Rectangle) (path string, err error) {
	defer func() {
		if s.Restore != nil {
			s.Restore()
		}
	}()

	if region.Empty() {
		log.Debugf("capture skipped: empty region %v", region)
		return "", errors.ErrEmptyRegion
	}

	if s.Delay > 0 {
		s.sleep(s.Delay)
	}

	img, err := s.Grabber.Grab(region)
	if err != nil {
		err = errors.NewCaptureError("screen grab failed", region, errors.CaptureFailed, err)
		log.LogError(err, "capture abandoned")
		return "", err
	}

	path, err = Save(img, s.Dir, FileName(s.Prefix, s.Layout, s.now()))
	if err != nil {
		log.LogError(err, "capture abandoned")
		return "", err
	}

	log.LogWithFields(log.F("path", path), log.F("region", region.String())).Info("screenshot saved")
	return path, nil
}

func (s *Session) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Session) sleep(d time.Duration) {
	if s.Sleep == nil {
		time.Sleep(d)
		return
	}
	s.Sleep(d)
}
