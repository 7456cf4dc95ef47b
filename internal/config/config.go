package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	defaults = map[string]interface{}{
		"verbose":          false,
		Cfg_gov_quorum:     5,
		Cfg_gov_voteName:   "VOTE",
		Cfg_gov_authName:   "DAO",
		Cfg_gov_votePolicy: "",
		Cfg_gov_authPolicy: "",
		Cfg_gov_treasury:   "",
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("vaultgate")
	viper.AddConfigPath("/etc/vaultgate/")
	viper.AddConfigPath("$HOME/.vaultgate")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("VAULTGATE")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
			logrus.New().Warnf("no config found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	c := &Config{}

	c.gov, err = buildGovernanceConfig()
	if err != nil {
		return nil, errors.Wrap(err, "governance config")
	}

	if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.WithField("level", "debug").Debug("setting log level")
	}

	return c, nil
}

type Config struct {
	gov *Governance
}

func (c *Config) Governance() *Governance {
	return c.gov
}
