// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/nftstake/thor"
)

// Config holds the program ids the bindings are deployed at.
type Config struct {
	Staking  thor.Address `yaml:"staking"`
	Token    thor.Address `yaml:"token"`
	Metadata thor.Address `yaml:"metadata"`
	// DeriverCacheSize is the number of derivations kept per program, 0 disables the cache.
	DeriverCacheSize int `yaml:"deriverCacheSize"`
}

// DefaultConfig returns the well known program ids.
func DefaultConfig() Config {
	return Config{
		Staking:          thor.BytesToAddress([]byte("Staking")),
		Token:            thor.BytesToAddress([]byte("Token")),
		Metadata:         thor.BytesToAddress([]byte("Metadata")),
		DeriverCacheSize: 1024,
	}
}

// Validate checks that every program id is set and unique.
func (c Config) Validate() error {
	ids := map[thor.Address]string{}
	for name, id := range map[string]thor.Address{
		"staking":  c.Staking,
		"token":    c.Token,
		"metadata": c.Metadata,
	} {
		if id.IsZero() {
			return errors.Errorf("%s program id is not set", name)
		}
		if other, ok := ids[id]; ok {
			return errors.Errorf("%s and %s share program id %s", name, other, id)
		}
		ids[id] = name
	}
	if c.DeriverCacheSize < 0 {
		return errors.New("negative deriver cache size")
	}
	return nil
}

// LoadConfig reads a YAML config file. Missing keys keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
