// Package store tracks the unspent output set the evaluation host
// resolves transaction inputs against. Double-spend prevention lives
// here, at ledger level; the validation policies themselves stay pure.
package store

import (
	"context"
	"sync"

	"github.com/quorumlabs/vaultgate/pkg/ledger"
)

var (
	_ UtxoStore = (*MemStore)(nil)
)

type UtxoStore interface {
	PutOutput(context.Context, ledger.OutRef, *ledger.TxOutput) error
	GetOutput(context.Context, ledger.OutRef) (*ledger.TxOutput, error)
	Spend(context.Context, ledger.OutRef) error
	UnspentAtAddress(context.Context, string) ([]ledger.OutRef, error)
}

type MemStore struct {
	mu sync.RWMutex

	outputs map[string]utxoEntry
	spent   map[string]struct{}

	spentBloom *spentBloom
}

type utxoEntry struct {
	ref ledger.OutRef
	out *ledger.TxOutput
}

func NewMemStore() *MemStore {
	return &MemStore{
		outputs:    make(map[string]utxoEntry),
		spent:      make(map[string]struct{}),
		spentBloom: newSpentBloom(),
	}
}

func (m *MemStore) PutOutput(_ context.Context, ref ledger.OutRef, out *ledger.TxOutput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := ref.Key()
	if _, ok := m.outputs[k]; ok {
		return ErrOutRefInUse
	}

	m.outputs[k] = utxoEntry{ref: ref, out: out}

	return nil
}

func (m *MemStore) GetOutput(_ context.Context, ref ledger.OutRef) (*ledger.TxOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.outputs[ref.Key()]
	if !ok {
		return nil, ErrNotFound
	}
	if m.isSpent(ref) {
		return nil, ErrSpent
	}

	return e.out, nil
}

func (m *MemStore) Spend(_ context.Context, ref ledger.OutRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := ref.Key()
	if _, ok := m.outputs[k]; !ok {
		return ErrNotFound
	}
	if m.isSpent(ref) {
		return ErrSpent
	}

	m.spent[k] = struct{}{}
	m.spentBloom.add(ref)

	return nil
}

// isSpent consults the bloom filter first; the map stays authoritative
// since the filter can report false positives. Callers hold m.mu.
func (m *MemStore) isSpent(ref ledger.OutRef) bool {
	if !m.spentBloom.test(ref) {
		return false
	}

	_, ok := m.spent[ref.Key()]
	return ok
}

func (m *MemStore) UnspentAtAddress(_ context.Context, addr string) ([]ledger.OutRef, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var refs []ledger.OutRef
	for k, e := range m.outputs {
		if e.out.Address != addr {
			continue
		}
		if _, ok := m.spent[k]; ok {
			continue
		}
		refs = append(refs, e.ref)
	}

	return refs, nil
}
