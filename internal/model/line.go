package model

// Mode tags how a submitted line was routed.
type Mode int

const (
	ModeCLI Mode = iota
	ModeAI
)

// String returns the short mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeCLI:
		return "cli"
	case ModeAI:
		return "ai"
	default:
		return "unknown"
	}
}

// PayloadKind distinguishes the states of a line's render payload.
type PayloadKind int

const (
	PayloadPending PayloadKind = iota // AI entry awaiting its response
	PayloadOutput                     // finalized command output
	PayloadReply                      // finalized AI reply
	PayloadFailure                    // AI call failed
)

// AIReply is the answer delivered by the AI collaborator. A rate-limited
// answer arrives through the same type.
type AIReply struct {
	Message       string `json:"message"`
	EquivalentCmd string `json:"equivalentCmd"`
	OpenURL       string `json:"openUrl,omitempty"`
	// Remaining is the server-reported number of AI prompts left, if any.
	Remaining *int `json:"remaining,omitempty"`
}

// Payload is what a line renders below its prompt.
type Payload struct {
	Kind   PayloadKind
	Output Output
	Reply  AIReply
}

// LineEntry is one exchange in the session transcript.
type LineEntry struct {
	ID      uint64
	Input   string
	Mode    Mode
	Payload Payload
}

// Pending reports whether the entry still awaits its AI response.
func (l LineEntry) Pending() bool {
	return l.Mode == ModeAI && l.Payload.Kind == PayloadPending
}
