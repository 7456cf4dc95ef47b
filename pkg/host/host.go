// Package host drives the validation policies against candidate
// transactions. It resolves input references to their created outputs,
// decides which policies a transaction triggers, and applies authorized
// transactions to the unspent output set.
package host

import (
	"context"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"

	"github.com/quorumlabs/vaultgate/internal/utils/logging"
	"github.com/quorumlabs/vaultgate/pkg/ledger"
	"github.com/quorumlabs/vaultgate/pkg/policy"
	"github.com/quorumlabs/vaultgate/pkg/store"
)

// Governance fixes the deployed instance the host validates for: the
// treasury script address, the vote token, the authority NFT, and the
// quorum threshold.
type Governance struct {
	Treasury       string
	VoteAsset      ledger.AssetID
	AuthorityAsset ledger.AssetID
	Quorum         uint64
}

// Decision is the outcome of evaluating one candidate transaction.
// Traces carries the policies' diagnostic strings when denied.
type Decision struct {
	Authorized bool
	Traces     []string
}

type Host struct {
	store store.UtxoStore
	gov   Governance
}

func New(s store.UtxoStore, gov Governance) *Host {
	return &Host{store: s, gov: gov}
}

// Resolve materializes the validation context for a candidate
// transaction. Unresolvable inputs are kept with a nil resolution so
// they aggregate as zero instead of failing evaluation.
func (h *Host) Resolve(ctx context.Context, t *ledger.Tx) (*ledger.TxContext, error) {
	txc := &ledger.TxContext{
		Outputs:  t.Outputs,
		Mint:     t.Mint,
		Redeemer: t.Redeemer,
	}

	for _, ref := range t.Inputs {
		out, err := h.store.GetOutput(ctx, ref)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrSpent) {
				txc.Inputs = append(txc.Inputs, ledger.TxInput{Ref: ref})
				continue
			}
			return nil, errors.Wrap(err, "resolving input")
		}

		txc.Inputs = append(txc.Inputs, ledger.TxInput{Ref: ref, Resolved: out})
	}

	return txc, nil
}

// Eval runs the policies the transaction triggers. The spend authorizer
// fires when any input is locked at the treasury address; the issuance
// policy fires when the mint field touches the governed currency
// symbol. Transactions triggering neither pass through untouched.
func (h *Host) Eval(ctx context.Context, t *ledger.Tx) (*Decision, error) {
	txc, err := h.Resolve(ctx, t)
	if err != nil {
		return nil, err
	}

	tr := &policy.Capture{}
	d := &Decision{Authorized: true}

	if h.spendsTreasury(txc) {
		sp := policy.NewSpendAuthorizer(h.gov.VoteAsset, h.gov.Quorum, tr)
		if !sp.Authorize(txc) {
			d.Authorized = false
		}
	}

	if h.mintsGoverned(t) {
		ip := policy.NewIssuancePolicy(h.gov.AuthorityAsset, tr)
		if !ip.Authorize(txc) {
			d.Authorized = false
		}
	}

	d.Traces = tr.Msgs

	if !d.Authorized {
		logging.Entry().WithField("traces", d.Traces).Debug("tx denied")
	}

	return d, nil
}

// Apply consumes the transaction's inputs and records its outputs.
// Callers must have obtained a positive Decision first; replays fail
// with ErrSpent from the store.
func (h *Host) Apply(ctx context.Context, t *ledger.Tx) error {
	id, err := t.ID()
	if err != nil {
		return errors.Wrap(err, "deriving tx id")
	}

	for _, ref := range t.Inputs {
		if err := h.store.Spend(ctx, ref); err != nil {
			return errors.Wrap(err, "consuming input")
		}
	}

	for i := range t.Outputs {
		ref := ledger.OutRef{Tx: cid.Cid(id), Index: uint32(i)}
		out := t.Outputs[i]
		if err := h.store.PutOutput(ctx, ref, &out); err != nil {
			return errors.Wrap(err, "recording output")
		}
	}

	return nil
}

func (h *Host) spendsTreasury(txc *ledger.TxContext) bool {
	for _, in := range txc.Inputs {
		if in.Resolved != nil && in.Resolved.Address == h.gov.Treasury {
			return true
		}
	}
	return false
}

func (h *Host) mintsGoverned(t *ledger.Tx) bool {
	for id := range t.Mint {
		if id.Policy == h.gov.VoteAsset.Policy {
			return true
		}
	}
	return false
}
