package attendance

import "time"

// WithClock swaps the service clock so tests can pin the office time.
func WithClock(s Service, now func() time.Time) Service {
	svc := s.(*service)
	svc.now = now
	return svc
}
