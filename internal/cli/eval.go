package cli

import (
	"fmt"
	"os"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quorumlabs/vaultgate/internal/config"
	"github.com/quorumlabs/vaultgate/pkg/host"
	"github.com/quorumlabs/vaultgate/pkg/ledger"
	"github.com/quorumlabs/vaultgate/pkg/store"
)

var (
	evalCmd = &cobra.Command{
		Use:          "eval <fixture.yaml>",
		Short:        "evaluate a candidate transaction against the governance policies",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runEval,
	}
)

func init() {
	evalCmd.Flags().Bool("apply", false, "apply the transaction to the utxo set when authorized")
}

// fixture is the yaml description of a pre-existing utxo set plus one
// candidate transaction. Output ids are free-form seed strings; the
// matching content address is derived from the seed.
type fixture struct {
	Utxos []fixtureUtxo `yaml:"utxos"`
	Tx    fixtureTx     `yaml:"tx"`
}

type fixtureUtxo struct {
	ID      string         `yaml:"id"`
	Index   uint32         `yaml:"index"`
	Address string         `yaml:"address"`
	Assets  []fixtureAsset `yaml:"assets"`
}

type fixtureAsset struct {
	Policy string `yaml:"policy"`
	Name   string `yaml:"name"`
	Qty    uint64 `yaml:"qty"`
}

type fixtureTx struct {
	Inputs  []fixtureRef     `yaml:"inputs"`
	Outputs []fixtureUtxoOut `yaml:"outputs"`
	Mint    []fixtureAsset   `yaml:"mint"`
}

type fixtureRef struct {
	ID    string `yaml:"id"`
	Index uint32 `yaml:"index"`
}

type fixtureUtxoOut struct {
	Address string         `yaml:"address"`
	Assets  []fixtureAsset `yaml:"assets"`
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	f, err := loadFixture(args[0])
	if err != nil {
		return err
	}

	s := store.NewMemStore()
	for _, u := range f.Utxos {
		ref := ledger.OutRef{Tx: seedCid(u.ID), Index: u.Index}
		out := &ledger.TxOutput{Address: u.Address, Value: assetValue(u.Assets)}
		if err := s.PutOutput(cmd.Context(), ref, out); err != nil {
			return errors.Wrap(err, "seeding utxo set")
		}
	}

	gov := cfg.Governance()
	h := host.New(s, host.Governance{
		Treasury:       gov.Treasury,
		VoteAsset:      gov.VoteAsset(),
		AuthorityAsset: gov.AuthorityAsset(),
		Quorum:         gov.Quorum,
	})

	tx := buildTx(&f.Tx)

	d, err := h.Eval(cmd.Context(), tx)
	if err != nil {
		return errors.Wrap(err, "evaluating tx")
	}

	if !d.Authorized {
		for _, t := range d.Traces {
			fmt.Fprintln(os.Stderr, t)
		}
		return errors.New("transaction denied")
	}

	fmt.Println("authorized")

	if apply, _ := cmd.Flags().GetBool("apply"); apply {
		if err := h.Apply(cmd.Context(), tx); err != nil {
			return errors.Wrap(err, "applying tx")
		}
		fmt.Println("applied")
	}

	return nil
}

func loadFixture(path string) (*fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading fixture")
	}

	f := &fixture{}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, errors.Wrap(err, "parsing fixture")
	}

	return f, nil
}

func buildTx(ft *fixtureTx) *ledger.Tx {
	tx := &ledger.Tx{Version: ledger.Version1}

	for _, in := range ft.Inputs {
		tx.Inputs = append(tx.Inputs, ledger.OutRef{Tx: seedCid(in.ID), Index: in.Index})
	}
	for _, out := range ft.Outputs {
		tx.Outputs = append(tx.Outputs, ledger.TxOutput{Address: out.Address, Value: assetValue(out.Assets)})
	}
	if len(ft.Mint) > 0 {
		tx.Mint = assetValue(ft.Mint)
	}

	return tx
}

func assetValue(assets []fixtureAsset) ledger.Value {
	v := make(ledger.Value, len(assets))
	for _, a := range assets {
		v[ledger.AssetID{Policy: ledger.PolicyID(a.Policy), Name: a.Name}] += a.Qty
	}
	return v
}

func seedCid(seed string) cid.Cid {
	h, _ := multihash.Sum([]byte(seed), multihash.SHA3_256, multihash.DefaultLengths[multihash.SHA3_256])
	return cid.NewCidV1(cid.Raw, h)
}
