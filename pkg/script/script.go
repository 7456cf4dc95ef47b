// Package script derives stable, content-addressed identities for
// parameterized policy instances. The identity doubles as the currency
// symbol of tokens minted under the policy and as the basis of the
// script's payment address.
//
// Derivation is two-phase to avoid the self-referential bootstrap: the
// authority NFT's identity comes from its own code plus an explicit
// parameter, and only then is that identity fed as the parameter of the
// spend script that depends on it.
package script

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/quorumlabs/vaultgate/pkg/ledger"
)

// addrTag distinguishes script addresses from other encodings of the
// same hash.
const addrTag byte = 0x73

// Script is a policy's logic blob plus the fixed parameter it was
// instantiated with.
type Script struct {
	Code  []byte `msgpack:"c"`
	Param []byte `msgpack:"p"`
}

// Apply returns the script instantiated with the given parameter.
func (s *Script) Apply(param []byte) *Script {
	return &Script{Code: s.Code, Param: param}
}

// Hash derives the content address of the parameterized script. Equal
// code and parameter always produce the same cid.
func (s *Script) Hash() (cid.Cid, error) {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "marshaling script")
	}

	h, err := multihash.Sum(b, multihash.SHA3_256, multihash.DefaultLengths[multihash.SHA3_256])
	if err != nil {
		return cid.Undef, errors.Wrap(err, "hashing script")
	}

	return cid.NewCidV1(cid.Raw, h), nil
}

// CurrencySymbol is the policy identifier under which the script's
// minted tokens are classed.
func (s *Script) CurrencySymbol() (ledger.PolicyID, error) {
	id, err := s.Hash()
	if err != nil {
		return "", err
	}

	enc, err := multibase.Encode(multibase.Base58BTC, id.Bytes())
	if err != nil {
		return "", errors.Wrap(err, "encoding symbol")
	}

	return ledger.PolicyID(enc), nil
}

// Address derives the payment address at which outputs locked by the
// script live.
func (s *Script) Address() (string, error) {
	id, err := s.Hash()
	if err != nil {
		return "", err
	}

	return multibase.Encode(multibase.Base58BTC, append([]byte{addrTag}, id.Bytes()...))
}

// Asset names a token class under the script's currency symbol.
func Asset(s *Script, name string) (ledger.AssetID, error) {
	sym, err := s.CurrencySymbol()
	if err != nil {
		return ledger.AssetID{}, err
	}

	return ledger.AssetID{Policy: sym, Name: name}, nil
}
