package touch

import "github.com/rs/zerolog/log"

// Cue is a feedback signal emitted on stroke transitions.
type Cue uint8

const (
	CueStart Cue = iota
	CueStay
	CueEnd
)

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueStay:
		return "stay"
	case CueEnd:
		return "end"
	}
	return "unknown"
}

// Feedback receives fire-and-forget cues. Implementations must not call
// back into the Router.
type Feedback interface {
	Cue(src Source, cue Cue)
}

// FeedbackFunc adapts a function to Feedback.
type FeedbackFunc func(src Source, cue Cue)

func (f FeedbackFunc) Cue(src Source, cue Cue) { f(src, cue) }

// LogFeedback writes every cue to the debug log.
type LogFeedback struct{}

func (LogFeedback) Cue(src Source, cue Cue) {
	log.Debug().Str("source", src.String()).Str("cue", cue.String()).Msg("feedback")
}

// MultiFeedback fans a cue out to several receivers.
type MultiFeedback []Feedback

func (m MultiFeedback) Cue(src Source, cue Cue) {
	for _, f := range m {
		if f != nil {
			f.Cue(src, cue)
		}
	}
}
