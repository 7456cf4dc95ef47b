package config

import (
	"github.com/spf13/viper"

	"github.com/quorumlabs/vaultgate/pkg/ledger"
)

// Governance describes the deployed instance the process validates
// for. The quorum is configuration rather than a compiled-in constant
// so multiple instances can run with different thresholds.
type Governance struct {
	Quorum   uint64
	Treasury string

	votePolicy string
	voteName   string
	authPolicy string
	authName   string
}

const (
	Cfg_gov_quorum     = "governance.quorum"
	Cfg_gov_treasury   = "governance.treasury"
	Cfg_gov_votePolicy = "governance.vote_policy"
	Cfg_gov_voteName   = "governance.vote_name"
	Cfg_gov_authPolicy = "governance.authority_policy"
	Cfg_gov_authName   = "governance.authority_name"
)

func buildGovernanceConfig() (*Governance, error) {
	g := &Governance{
		Quorum:     viper.GetUint64(Cfg_gov_quorum),
		Treasury:   viper.GetString(Cfg_gov_treasury),
		votePolicy: viper.GetString(Cfg_gov_votePolicy),
		voteName:   viper.GetString(Cfg_gov_voteName),
		authPolicy: viper.GetString(Cfg_gov_authPolicy),
		authName:   viper.GetString(Cfg_gov_authName),
	}

	return g, nil
}

func (g *Governance) VoteAsset() ledger.AssetID {
	return ledger.AssetID{Policy: ledger.PolicyID(g.votePolicy), Name: g.voteName}
}

func (g *Governance) AuthorityAsset() ledger.AssetID {
	return ledger.AssetID{Policy: ledger.PolicyID(g.authPolicy), Name: g.authName}
}
