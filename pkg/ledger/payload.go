package ledger

// Datum is the opaque payload attached to a script-locked output. The
// validation core checks structural presence only; content is left to
// the deployment (proposal metadata is deliberately unconstrained
// upstream).
type Datum struct {
	Tag  uint8  `msgpack:"g"`
	Data []byte `msgpack:"d"`
}

// Redeemer is the opaque payload supplied by the spender.
type Redeemer struct {
	Tag  uint8  `msgpack:"g"`
	Data []byte `msgpack:"d"`
}

// PayloadDecoder is the extension seam for deployments that want to
// constrain datum/redeemer structure without touching the quorum and
// aggregation logic. The core itself never decodes either payload.
type PayloadDecoder interface {
	DecodeDatum(*Datum) error
	DecodeRedeemer(*Redeemer) error
}
