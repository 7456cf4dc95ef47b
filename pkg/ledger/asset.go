package ledger

import (
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// PolicyID is the content-addressed identifier of the policy script
// governing an asset class. See pkg/script for derivation.
type PolicyID string

// AssetID uniquely identifies a fungible or non-fungible asset class.
// Two AssetIDs are the same asset only if both policy and name match
// exactly.
type AssetID struct {
	Policy PolicyID `msgpack:"p"`
	Name   string   `msgpack:"n"`
}

// Value is the bundle of assets carried by a single transaction input or
// output. Bundles never merge implicitly; aggregation is always explicit
// (see pkg/policy).
type Value map[AssetID]uint64

// AssetQty returns the quantity of the given asset in the bundle,
// treating absence as 0. Safe on a nil Value.
func (v Value) AssetQty(id AssetID) uint64 {
	return v[id]
}

// IsZero reports whether the bundle carries no assets at all.
func (v Value) IsZero() bool {
	for _, q := range v {
		if q != 0 {
			return false
		}
	}
	return true
}

type valueEntry struct {
	Policy PolicyID `msgpack:"p"`
	Name   string   `msgpack:"n"`
	Qty    uint64   `msgpack:"q"`
}

// EncodeMsgpack encodes the bundle as a list of entries sorted by
// policy then name, so that equal bundles always produce identical
// bytes. Transaction IDs are derived from the encoding.
func (v Value) EncodeMsgpack(enc *msgpack.Encoder) error {
	entries := make([]valueEntry, 0, len(v))
	for id, q := range v {
		entries = append(entries, valueEntry{id.Policy, id.Name, q})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Policy != entries[j].Policy {
			return entries[i].Policy < entries[j].Policy
		}
		return entries[i].Name < entries[j].Name
	})

	return enc.Encode(entries)
}

func (v *Value) DecodeMsgpack(dec *msgpack.Decoder) error {
	var entries []valueEntry
	if err := dec.Decode(&entries); err != nil {
		return err
	}

	val := make(Value, len(entries))
	for _, e := range entries {
		val[AssetID{e.Policy, e.Name}] += e.Qty
	}

	*v = val

	return nil
}
