package store

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/quorumlabs/vaultgate/pkg/ledger"
)

const (
	maxTrackedSpends = 100000
	falsePositive    = 0.01
)

// spentBloom is a fast negative check over consumed output references.
// A miss means definitely unspent; a hit must be confirmed against the
// spent map.
type spentBloom struct {
	f *bloom.BloomFilter
}

func newSpentBloom() *spentBloom {
	return &spentBloom{f: bloom.NewWithEstimates(maxTrackedSpends, falsePositive)}
}

func (b *spentBloom) add(ref ledger.OutRef) {
	b.f.Add([]byte(ref.Key()))
}

func (b *spentBloom) test(ref ledger.OutRef) bool {
	return b.f.Test([]byte(ref.Key()))
}
