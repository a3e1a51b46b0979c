package engine

import (
	"fmt"
	"time"
)

// FrameStats accumulates CPU frame times and produces a window title once
// per reporting interval.
type FrameStats struct {
	Title    string
	Interval float64 // seconds

	frames int
	total  time.Duration
	worst  time.Duration
	start  float64
	begun  bool
}

func NewFrameStats(title string) *FrameStats {
	return &FrameStats{Title: title, Interval: 1}
}

// Record adds one frame that took cpu at time now (seconds). When the
// interval has elapsed it returns the new title and true, and starts over.
func (s *FrameStats) Record(cpu time.Duration, now float64) (string, bool) {
	if !s.begun {
		s.start, s.begun = now, true
	}
	s.frames++
	s.total += cpu
	if cpu > s.worst {
		s.worst = cpu
	}

	elapsed := now - s.start
	if elapsed < s.Interval {
		return "", false
	}
	fps := float64(s.frames) / elapsed
	avg := s.total / time.Duration(s.frames)
	title := fmt.Sprintf("%s | %.0f fps | cpu %v (max %v)", s.Title, fps, avg.Round(time.Microsecond), s.worst.Round(time.Microsecond))

	s.frames, s.total, s.worst, s.start = 0, 0, 0, now
	return title, true
}
