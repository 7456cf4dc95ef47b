package policy

import "github.com/quorumlabs/vaultgate/internal/utils/logging"

// Trace literals surfaced to the submitting party when a predicate
// denies. Tooling greps for these exact strings; do not reword.
const (
	TraceInsufficientVotes = "Not enough votes"
	TraceAuthorityAbsent   = "The DAO's NFT is not present."
)

// Tracer receives the diagnostic message attached to a deny. It is the
// sole failure channel of the predicates.
type Tracer interface {
	Trace(msg string)
}

// LogTracer forwards traces to the process logger.
type LogTracer struct{}

func (LogTracer) Trace(msg string) {
	logging.Entry().Info(msg)
}

// Capture records traces so the host can hand them back to the
// submitting party.
type Capture struct {
	Msgs []string
}

func (c *Capture) Trace(msg string) {
	c.Msgs = append(c.Msgs, msg)
}

func trace(t Tracer, msg string) {
	if t == nil {
		t = LogTracer{}
	}
	t.Trace(msg)
}
