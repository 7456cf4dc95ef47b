package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quorumlabs/vaultgate/pkg/ledger"
)

func TestSpendAboveQuorum(t *testing.T) {
	ctx := resolvedCtx(bundle(voteAsset, 3), bundle(voteAsset, 3))

	p := NewSpendAuthorizer(voteAsset, 5, nil)

	assert.True(t, p.Authorize(ctx))
}

func TestSpendExactlyAtQuorum(t *testing.T) {
	ctx := resolvedCtx(bundle(voteAsset, 5))

	tr := &Capture{}
	p := NewSpendAuthorizer(voteAsset, 5, tr)

	assert.False(t, p.Authorize(ctx))
	assert.Equal(t, []string{TraceInsufficientVotes}, tr.Msgs)
}

func TestSpendInsufficientVotes(t *testing.T) {
	ctx := resolvedCtx(bundle(voteAsset, 2), bundle(otherAsset, 100))

	tr := &Capture{}
	p := NewSpendAuthorizer(voteAsset, 5, tr)

	assert.False(t, p.Authorize(ctx))
	assert.Equal(t, []string{TraceInsufficientVotes}, tr.Msgs)
}

func TestSpendNoVotes(t *testing.T) {
	ctx := resolvedCtx(bundle(otherAsset, 1))

	p := NewSpendAuthorizer(voteAsset, 5, &Capture{})

	assert.False(t, p.Authorize(ctx))
}

func TestSpendEmptyInputs(t *testing.T) {
	tr := &Capture{}
	p := NewSpendAuthorizer(voteAsset, 5, tr)

	assert.False(t, p.Authorize(&ledger.TxContext{}))
	assert.Equal(t, []string{TraceInsufficientVotes}, tr.Msgs)
}

func TestSpendUnresolvedInputsCountZero(t *testing.T) {
	ctx := resolvedCtx(bundle(voteAsset, 6))
	ctx.Inputs = append(ctx.Inputs, ledger.TxInput{})

	p := NewSpendAuthorizer(voteAsset, 5, nil)

	assert.True(t, p.Authorize(ctx))
}

func TestSpendIdempotent(t *testing.T) {
	ctx := resolvedCtx(bundle(voteAsset, 6))

	p := NewSpendAuthorizer(voteAsset, 5, nil)

	first := p.Authorize(ctx)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Authorize(ctx))
	}
}

func TestSpendZeroQuorum(t *testing.T) {
	p := NewSpendAuthorizer(voteAsset, 0, nil)

	assert.True(t, p.Authorize(resolvedCtx(bundle(voteAsset, 1))))
	assert.False(t, p.Authorize(resolvedCtx(bundle(voteAsset, 0))))
}
