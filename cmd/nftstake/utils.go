// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/nftstake/builtin"
	"github.com/vechain/nftstake/builtin/metadata"
	"github.com/vechain/nftstake/builtin/staker/pool"
	"github.com/vechain/nftstake/eligibility"
	"github.com/vechain/nftstake/kv"
	"github.com/vechain/nftstake/log"
	"github.com/vechain/nftstake/processor"
	"github.com/vechain/nftstake/state"
	"github.com/vechain/nftstake/thor"
)

var logger = log.WithContext("pkg", "nftstake")

func initLogger(ctx *cli.Context) {
	level := log.FromVerbosity(ctx.GlobalInt(verbosityFlag.Name))
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		log.SetDefault(log.JSONHandler(os.Stderr, level))
	} else {
		log.SetDefault(log.NewTerminalHandler(os.Stderr, level))
	}
}

func loadConfig(ctx *cli.Context) (builtin.Config, error) {
	path := ctx.GlobalString(configFlag.Name)
	if path == "" {
		return builtin.DefaultConfig(), nil
	}
	return builtin.LoadConfig(path)
}

func openStore(ctx *cli.Context) (*kv.LevelDB, error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return nil, errors.New("unable to infer default data dir, use -data-dir to specify")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	cacheMB := max(ctx.GlobalInt(cacheFlag.Name), 16)
	dir := filepath.Join(dataDir, "ledger.db")
	logger.Debug("open ledger database", "dir", dir, "cache", cacheMB)
	return kv.Open(dir, cacheMB, 256)
}

// openProcessor opens the database and binds the programs.
// The returned func closes the database.
func openProcessor(ctx *cli.Context) (*processor.Processor, func(), error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	programs, err := builtin.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close database", "err", err)
		}
	}
	return processor.New(state.NewStater(store), programs, nil), closeFn, nil
}

// execute runs op with the global signers and time.
func execute(ctx *cli.Context, name string, op processor.Operation) error {
	signers, err := parseSigners(ctx.GlobalStringSlice(signerFlag.Name))
	if err != nil {
		return err
	}
	proc, closeFn, err := openProcessor(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	receipt, err := proc.Execute(context.Background(), processor.Request{
		Name:    name,
		Signers: signers,
		Time:    ctx.GlobalUint64(timeFlag.Name),
	}, op)
	if err != nil {
		return errors.WithMessage(err, name)
	}
	logger.Debug("executed", "op", name, "time", receipt.Time, "changes", receipt.Changes)
	return printJSON(receipt)
}

func view(ctx *cli.Context, fn func(p *processor.Programs) (any, error)) error {
	proc, closeFn, err := openProcessor(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	var out any
	if err := proc.View(func(p *processor.Programs) error {
		out, err = fn(p)
		return err
	}); err != nil {
		return err
	}
	return printJSON(out)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func parseSigners(values []string) ([]thor.Address, error) {
	signers := make([]thor.Address, 0, len(values))
	for _, v := range values {
		addr, err := thor.ParseAddress(v)
		if err != nil {
			return nil, errors.WithMessagef(err, "signer %q", v)
		}
		signers = append(signers, addr)
	}
	return signers, nil
}

// addressFlag parses a required address flag of the command.
func addressFlag(ctx *cli.Context, flag cli.StringFlag) (thor.Address, error) {
	v := ctx.String(flag.Name)
	if v == "" {
		return thor.Address{}, errors.Errorf("missing -%s", flag.Name)
	}
	addr, err := thor.ParseAddress(v)
	if err != nil {
		return thor.Address{}, errors.WithMessage(err, flag.Name)
	}
	return addr, nil
}

// poolFile is the YAML definition of a pool.
type poolFile struct {
	Name       string              `yaml:"name"`
	Admin      thor.Address        `yaml:"admin"`
	RewardMint thor.Address        `yaml:"rewardMint"`
	RewardRate uint64              `yaml:"rewardRate"`
	Custody    pool.CustodyMode    `yaml:"custody"`
	Policy     *eligibility.Policy `yaml:"policy"`
}

func loadPoolFile(path string) (*poolFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read pool file")
	}
	pf := &poolFile{Custody: pool.CustodyVault}
	if err := yaml.Unmarshal(data, pf); err != nil {
		return nil, errors.Wrap(err, "decode pool file")
	}
	if pf.Name == "" {
		return nil, errors.New("pool name is required")
	}
	if pf.Admin.IsZero() || pf.RewardMint.IsZero() {
		return nil, errors.New("pool admin and reward mint are required")
	}
	return pf, nil
}

func loadMetadataFile(path string) (*metadata.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read metadata file")
	}
	var rec metadata.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "decode metadata file")
	}
	return &rec, nil
}

func handleExitSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.vechain.nftstake")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.nftstake")
		} else {
			return filepath.Join(home, ".org.vechain.nftstake")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
