package ledger

import (
	"strconv"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	Version1 uint8 = 1
)

type TxID cid.Cid

// OutRef points at an output created by a previous transaction.
type OutRef struct {
	Tx    cid.Cid
	Index uint32
}

func (r OutRef) Key() string {
	return r.Tx.KeyString() + ":" + strconv.FormatUint(uint64(r.Index), 10)
}

type outRefWire struct {
	Tx    []byte `msgpack:"t"`
	Index uint32 `msgpack:"i"`
}

// EncodeMsgpack writes the cid in its raw byte form so the encoding
// stays stable across cid library versions.
func (r OutRef) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(outRefWire{Tx: r.Tx.Bytes(), Index: r.Index})
}

func (r *OutRef) DecodeMsgpack(dec *msgpack.Decoder) error {
	w := outRefWire{}
	if err := dec.Decode(&w); err != nil {
		return err
	}

	if len(w.Tx) > 0 {
		c, err := cid.Cast(w.Tx)
		if err != nil {
			return errors.Wrap(err, "casting outref cid")
		}
		r.Tx = c
	}
	r.Index = w.Index

	return nil
}

// TxOutput is a created output: the address owning it, the value bundle
// it carries, and an optional datum attached by the locking script.
type TxOutput struct {
	Address string `msgpack:"a"`
	Value   Value  `msgpack:"v"`
	Datum   *Datum `msgpack:"d,omitempty"`
}

// TxInput is a consumed output: the reference plus the output as it was
// resolved at validation time. Resolved may be nil when the reference
// could not be materialized; such inputs contribute nothing to any
// aggregation rather than failing validation.
type TxInput struct {
	Ref      OutRef
	Resolved *TxOutput
}

// TxContext is the fully-materialized view of a candidate transaction
// handed to the validation policies. Policies only read Inputs; the
// remaining fields are carried for the host and future hardening.
type TxContext struct {
	Inputs      []TxInput
	Outputs     []TxOutput
	Mint        Value
	Redeemer    *Redeemer
	Signatories [][]byte
}

// Tx is the wire form of a candidate transaction as built by the
// transaction-construction layer.
type Tx struct {
	Version  uint8      `msgpack:"v"`
	Ts       int64      `msgpack:"s"`
	Inputs   []OutRef   `msgpack:"i"`
	Outputs  []TxOutput `msgpack:"o"`
	Mint     Value      `msgpack:"m,omitempty"`
	Redeemer *Redeemer  `msgpack:"r,omitempty"`
}

func (t *Tx) Marshal() ([]byte, error) {
	b, err := msgpack.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling tx")
	}

	return b, nil
}

func (t *Tx) Unmarshal(b []byte) error {
	if err := msgpack.Unmarshal(b, t); err != nil {
		return errors.Wrap(err, "unmarshaling tx")
	}

	if t.Version != Version1 {
		return errors.Errorf("unknown tx version %d", t.Version)
	}

	return nil
}

// ID derives the transaction id from the encoded form.
func (t *Tx) ID() (TxID, error) {
	b, err := t.Marshal()
	if err != nil {
		return TxID(cid.Undef), err
	}

	h, err := multihash.Sum(b, multihash.SHA3_256, multihash.DefaultLengths[multihash.SHA3_256])
	if err != nil {
		return TxID(cid.Undef), errors.Wrap(err, "hashing tx")
	}

	return TxID(cid.NewCidV1(cid.Raw, h)), nil
}
