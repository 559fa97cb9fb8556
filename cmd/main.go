package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/omnipool-network/omnipool/bridge"
	"github.com/omnipool-network/omnipool/cmd/rpc"
	"github.com/omnipool-network/omnipool/lib"
	"github.com/omnipool-network/omnipool/pool"
	"github.com/omnipool-network/omnipool/store"
	"github.com/omnipool-network/omnipool/token"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{Use: "omnipool", Short: "omnipool is a multi-chain liquidity pool daemon"}
	dataDir = ""
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "start the pool daemon",
	Run: func(cmd *cobra.Command, args []string) {
		Start()
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", lib.DefaultDataDirPath(), "custom data directory location")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func Start() {
	config, genesis := InitializeDataDirectory(dataDir, lib.NewDefaultLogger())
	l := lib.NewLogger(lib.LoggerConfig{Level: config.GetLogLevel()}, dataDir)
	db, err := store.New(config, l)
	if err != nil {
		l.Fatal(err.Error())
	}
	st := pool.New(config.ChainId, db, config, l)
	// the asset ledgers and fee strategies the genesis pools reference
	for _, gp := range genesis.Pools {
		st.RegisterToken(token.NewToken(gp.TokenSymbol, gp.LocalDecimals))
	}
	st.RegisterFeeLibrary(&pool.ZeroFeeLibrary{})
	st.RegisterFeeLibrary(pool.NewFlatFeeLibrary(st, 3, 1, 6, 45))
	if err = importGenesisIfNeeded(st, genesis); err != nil {
		l.Fatal(err.Error())
	}
	// wire the bridge to a local relay endpoint for this chain's channel
	br := bridge.New(st, db, nil, config.TransportConfig, l)
	relay := bridge.NewRelay(config.QuoteFeeNative, l)
	tp, err := relay.Register(config.ChainId, config.ChannelAddress, br)
	if err != nil {
		l.Fatal(err.Error())
	}
	br.UseTransport(tp)
	ctx, cancel := context.WithCancel(context.Background())
	g := relay.Start(ctx, time.Duration(config.RedeliverMaxS)*time.Second)
	rpc.NewServer(br, config, l).Start()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGABRT)
	s := <-stop
	l.Infof("Exit command %s received", s)
	cancel()
	_ = g.Wait()
	if err = db.Close(); err != nil {
		l.Error(err.Error())
	}
	os.Exit(0)
}

// importGenesisIfNeeded() writes the genesis pools on a fresh database only
func importGenesisIfNeeded(st *pool.State, genesis *pool.GenesisState) lib.ErrorI {
	return st.Transact(func() lib.ErrorI {
		pools, err := st.GetPools()
		if err != nil {
			return err
		}
		if len(pools) != 0 {
			return nil
		}
		return st.ImportGenesis(genesis)
	})
}

func InitializeDataDirectory(dataDirPath string, log lib.LoggerI) (lib.Config, *pool.GenesisState) {
	log.Infof("Reading data directory at %s", dataDirPath)
	if err := os.MkdirAll(dataDirPath, os.ModePerm); err != nil {
		panic(err)
	}
	configFilePath := filepath.Join(dataDirPath, lib.ConfigFilePath)
	if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
		log.Infof("Creating %s file", lib.ConfigFilePath)
		if err2 := lib.DefaultConfig().WriteToFile(configFilePath); err2 != nil {
			panic(err2)
		}
	}
	genesisFilePath := filepath.Join(dataDirPath, lib.GenesisFilePath)
	if _, err := os.Stat(genesisFilePath); errors.Is(err, os.ErrNotExist) {
		log.Infof("Creating %s file", lib.GenesisFilePath)
		if err2 := lib.SaveJSONToFile(new(pool.GenesisState), dataDirPath, lib.GenesisFilePath); err2 != nil {
			panic(err2)
		}
	}
	config, err := lib.NewConfigFromFile(configFilePath)
	if err != nil {
		panic(err)
	}
	config.DataDirPath = dataDirPath
	genesis, err := pool.NewGenesisFromFile(dataDirPath)
	if err != nil {
		panic(err)
	}
	return config, genesis
}
