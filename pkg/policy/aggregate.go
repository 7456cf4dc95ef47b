// Package policy implements the governance validation predicates: a
// quorum-gated spend authorizer for the treasury script and an
// authority-NFT-gated issuance policy for the vote token. Both are pure
// boolean predicates; every ambiguous or malformed input degrades to a
// zero contribution and ultimately to a deny, never to an error.
package policy

import "github.com/quorumlabs/vaultgate/pkg/ledger"

// SumAsset sums the quantity of target across the given bundles.
// Bundles lacking the asset (or nil bundles) contribute 0. The result
// is independent of bundle order.
func SumAsset(bundles []ledger.Value, target ledger.AssetID) uint64 {
	var total uint64

	for _, b := range bundles {
		total += b.AssetQty(target)
	}

	return total
}

// InputValues extracts the resolved value bundles of a transaction's
// consumed inputs. Unresolved inputs are skipped so they aggregate as
// zero.
func InputValues(ctx *ledger.TxContext) []ledger.Value {
	if ctx == nil {
		return nil
	}

	vals := make([]ledger.Value, 0, len(ctx.Inputs))
	for _, in := range ctx.Inputs {
		if in.Resolved == nil {
			continue
		}
		vals = append(vals, in.Resolved.Value)
	}

	return vals
}
