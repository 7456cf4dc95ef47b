package policy

import "github.com/quorumlabs/vaultgate/pkg/ledger"

// IssuancePolicy gates minting and burning of the vote token: the
// transaction must consume the authority NFT among its inputs. Any
// positive quantity authorizes; the minted or burned amount itself is
// unconstrained, which is a stated design property of the scheme rather
// than an omission.
type IssuancePolicy struct {
	AuthorityAsset ledger.AssetID

	Tracer Tracer
}

func NewIssuancePolicy(authorityAsset ledger.AssetID, t Tracer) *IssuancePolicy {
	return &IssuancePolicy{AuthorityAsset: authorityAsset, Tracer: t}
}

// Authorize never panics and has no side effects beyond tracing.
func (p *IssuancePolicy) Authorize(ctx *ledger.TxContext) bool {
	if SumAsset(InputValues(ctx), p.AuthorityAsset) == 0 {
		trace(p.Tracer, TraceAuthorityAbsent)
		return false
	}

	return true
}
