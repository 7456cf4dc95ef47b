package policy

import "github.com/quorumlabs/vaultgate/pkg/ledger"

// SpendAuthorizer gates spends of the treasury script. A spend is
// authorized iff the transaction consumes strictly more than Quorum
// units of the vote token across its inputs; exactly meeting the quorum
// is not sufficient.
//
// The datum and redeemer are intentionally unconstrained here: no
// signature or proposal checks are enforced. Deployments hardening this
// for production should hang those checks off ledger.PayloadDecoder.
type SpendAuthorizer struct {
	VoteAsset ledger.AssetID
	Quorum    uint64

	Tracer Tracer
}

func NewSpendAuthorizer(voteAsset ledger.AssetID, quorum uint64, t Tracer) *SpendAuthorizer {
	return &SpendAuthorizer{VoteAsset: voteAsset, Quorum: quorum, Tracer: t}
}

// Authorize never panics and has no side effects beyond tracing.
func (p *SpendAuthorizer) Authorize(ctx *ledger.TxContext) bool {
	votes := SumAsset(InputValues(ctx), p.VoteAsset)

	if votes <= p.Quorum {
		trace(p.Tracer, TraceInsufficientVotes)
		return false
	}

	return true
}
