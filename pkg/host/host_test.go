package host

import (
	"context"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"

	"github.com/quorumlabs/vaultgate/pkg/ledger"
	"github.com/quorumlabs/vaultgate/pkg/policy"
	"github.com/quorumlabs/vaultgate/pkg/store"
)

var (
	voteAsset = ledger.AssetID{Policy: "vote-policy", Name: "VOTE"}
	authAsset = ledger.AssetID{Policy: "authority-policy", Name: "DAO"}

	testGov = Governance{
		Treasury:       "treasury-addr",
		VoteAsset:      voteAsset,
		AuthorityAsset: authAsset,
		Quorum:         5,
	}
)

func seedRef(t *testing.T, seed string, idx uint32) ledger.OutRef {
	t.Helper()

	h, err := multihash.Sum([]byte(seed), multihash.SHA3_256, multihash.DefaultLengths[multihash.SHA3_256])
	if err != nil {
		t.Fatal(err)
	}

	return ledger.OutRef{Tx: cid.NewCidV1(cid.Raw, h), Index: idx}
}

func seedStore(t *testing.T, outs map[string]*ledger.TxOutput) (*store.MemStore, map[string]ledger.OutRef) {
	t.Helper()

	s := store.NewMemStore()
	refs := make(map[string]ledger.OutRef, len(outs))

	for seed, out := range outs {
		ref := seedRef(t, seed, 0)
		if err := s.PutOutput(context.Background(), ref, out); err != nil {
			t.Fatal(err)
		}
		refs[seed] = ref
	}

	return s, refs
}

func TestEvalTreasurySpendAuthorized(t *testing.T) {
	s, refs := seedStore(t, map[string]*ledger.TxOutput{
		"ballot-1": {Address: testGov.Treasury, Value: ledger.Value{voteAsset: 3}},
		"ballot-2": {Address: "voter-addr", Value: ledger.Value{voteAsset: 3}},
	})

	h := New(s, testGov)

	tx := &ledger.Tx{
		Version: ledger.Version1,
		Inputs:  []ledger.OutRef{refs["ballot-1"], refs["ballot-2"]},
		Outputs: []ledger.TxOutput{{Address: "grantee-addr", Value: ledger.Value{voteAsset: 6}}},
	}

	d, err := h.Eval(context.Background(), tx)
	if err != nil {
		t.Fatal(err)
	}

	assert.True(t, d.Authorized)
	assert.Empty(t, d.Traces)
}

func TestEvalTreasurySpendDenied(t *testing.T) {
	s, refs := seedStore(t, map[string]*ledger.TxOutput{
		"ballot-1": {Address: testGov.Treasury, Value: ledger.Value{voteAsset: 2}},
		"funds-1":  {Address: "voter-addr", Value: ledger.Value{{Policy: "ada", Name: ""}: 100}},
	})

	h := New(s, testGov)

	tx := &ledger.Tx{
		Version: ledger.Version1,
		Inputs:  []ledger.OutRef{refs["ballot-1"], refs["funds-1"]},
	}

	d, err := h.Eval(context.Background(), tx)
	if err != nil {
		t.Fatal(err)
	}

	assert.False(t, d.Authorized)
	assert.Equal(t, []string{policy.TraceInsufficientVotes}, d.Traces)
}

func TestEvalMintWithAuthority(t *testing.T) {
	s, refs := seedStore(t, map[string]*ledger.TxOutput{
		"nft-out": {Address: "dao-admin", Value: ledger.Value{authAsset: 1}},
	})

	h := New(s, testGov)

	tx := &ledger.Tx{
		Version: ledger.Version1,
		Inputs:  []ledger.OutRef{refs["nft-out"]},
		Mint:    ledger.Value{voteAsset: 50},
	}

	d, err := h.Eval(context.Background(), tx)
	if err != nil {
		t.Fatal(err)
	}

	assert.True(t, d.Authorized)
}

func TestEvalMintWithoutAuthority(t *testing.T) {
	s, refs := seedStore(t, map[string]*ledger.TxOutput{
		"plain-out": {Address: "someone", Value: ledger.Value{voteAsset: 9}},
	})

	h := New(s, testGov)

	tx := &ledger.Tx{
		Version: ledger.Version1,
		Inputs:  []ledger.OutRef{refs["plain-out"]},
		Mint:    ledger.Value{voteAsset: 50},
	}

	d, err := h.Eval(context.Background(), tx)
	if err != nil {
		t.Fatal(err)
	}

	assert.False(t, d.Authorized)
	assert.Equal(t, []string{policy.TraceAuthorityAbsent}, d.Traces)
}

func TestEvalUntouchedTxPasses(t *testing.T) {
	s, refs := seedStore(t, map[string]*ledger.TxOutput{
		"plain-out": {Address: "someone", Value: ledger.Value{{Policy: "ada", Name: ""}: 7}},
	})

	h := New(s, testGov)

	tx := &ledger.Tx{
		Version: ledger.Version1,
		Inputs:  []ledger.OutRef{refs["plain-out"]},
	}

	d, err := h.Eval(context.Background(), tx)
	if err != nil {
		t.Fatal(err)
	}

	assert.True(t, d.Authorized)
}

func TestEvalUnresolvableInputDenied(t *testing.T) {
	s, _ := seedStore(t, nil)

	h := New(s, testGov)

	tx := &ledger.Tx{
		Version: ledger.Version1,
		Inputs:  []ledger.OutRef{seedRef(t, "never-created", 0)},
		Mint:    ledger.Value{voteAsset: 1},
	}

	d, err := h.Eval(context.Background(), tx)
	if err != nil {
		t.Fatal(err)
	}

	assert.False(t, d.Authorized)
	assert.Equal(t, []string{policy.TraceAuthorityAbsent}, d.Traces)
}

func TestEvalIdempotent(t *testing.T) {
	s, refs := seedStore(t, map[string]*ledger.TxOutput{
		"ballot-1": {Address: testGov.Treasury, Value: ledger.Value{voteAsset: 6}},
	})

	h := New(s, testGov)

	tx := &ledger.Tx{
		Version: ledger.Version1,
		Inputs:  []ledger.OutRef{refs["ballot-1"]},
	}

	first, err := h.Eval(context.Background(), tx)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		d, err := h.Eval(context.Background(), tx)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, first.Authorized, d.Authorized)
	}
}

func TestApplyAndReplay(t *testing.T) {
	ctx := context.Background()

	s, refs := seedStore(t, map[string]*ledger.TxOutput{
		"ballot-1": {Address: testGov.Treasury, Value: ledger.Value{voteAsset: 6}},
	})

	h := New(s, testGov)

	tx := &ledger.Tx{
		Version: ledger.Version1,
		Inputs:  []ledger.OutRef{refs["ballot-1"]},
		Outputs: []ledger.TxOutput{{Address: "grantee-addr", Value: ledger.Value{voteAsset: 6}}},
	}

	d, err := h.Eval(ctx, tx)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Authorized {
		t.Fatal("expected spend to be authorized")
	}

	if err := h.Apply(ctx, tx); err != nil {
		t.Fatal(err)
	}

	id, err := tx.ID()
	if err != nil {
		t.Fatal(err)
	}

	created := ledger.OutRef{Tx: cid.Cid(id), Index: 0}
	out, err := s.GetOutput(ctx, created)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "grantee-addr", out.Address)

	// replaying the same tx must hit double-spend prevention
	assert.ErrorIs(t, h.Apply(ctx, tx), store.ErrSpent)
}
