package lib

import (
	"os"
	"path/filepath"
	"strings"
)

/* This file implements logic for 'user controlled' global configurations of each module of the node */

const (
	// GLOBAL CONSTANTS
	UnknownChainId = uint64(0) // the default 'unknown' chain id

	// FILE NAMES in the 'data directory'
	ConfigFilePath  = "config.json"  // the file path for the node configuration
	GenesisFilePath = "genesis.json" // the file path for the initial pool and chain-path layout
)

// Config is the structure of the user configuration options for an omnipool node
type Config struct {
	MainConfig      // main options spanning over all modules
	RPCConfig       // rpc API options
	StoreConfig     // persistence options
	TransportConfig // cross-chain messaging options
}

// DefaultConfig() returns a Config with developer set options
func DefaultConfig() Config {
	return Config{
		MainConfig:      DefaultMainConfig(),
		RPCConfig:       DefaultRPCConfig(),
		StoreConfig:     DefaultStoreConfig(),
		TransportConfig: DefaultTransportConfig(),
	}
}

// MAIN CONFIG BELOW

type MainConfig struct {
	LogLevel string `json:"logLevel"` // any level includes the levels above it: debug < info < warning < error
	ChainId  uint64 `json:"chainId"`  // the identifier of the chain this node's ledger lives on
}

// DefaultMainConfig() sets log level to 'info' and chain id to 1
func DefaultMainConfig() MainConfig {
	return MainConfig{
		LogLevel: "info",
		ChainId:  1,
	}
}

// GetLogLevel() parses the log string in the config file into a LogLevel Enum
func (m *MainConfig) GetLogLevel() int32 {
	switch {
	case strings.Contains(strings.ToLower(m.LogLevel), "deb"):
		return DebugLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "inf"):
		return InfoLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "war"):
		return WarnLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "err"):
		return ErrorLevel
	default:
		return DebugLevel
	}
}

// RPC CONFIG BELOW

type RPCConfig struct {
	RPCPort   string `json:"rpcPort"`   // the port where the query rpc server is hosted
	AdminPort string `json:"adminPort"` // the port where the admin rpc server is hosted
	TimeoutS  int    `json:"timeoutS"`  // the rpc request timeout in seconds
}

// DefaultRPCConfig() serves the query rpc on 42000 and the admin rpc on 42001
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		RPCPort:   "42000",
		AdminPort: "42001",
		TimeoutS:  3,
	}
}

// STORE CONFIG BELOW

type StoreConfig struct {
	DataDirPath string `json:"dataDirPath"` // path of the designated folder where the application stores its data
	DBName      string `json:"dbName"`      // name of the database
	InMemory    bool   `json:"inMemory"`    // whether the database is in memory only (testing)
}

// DefaultStoreConfig() returns the developer recommended store configuration
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DataDirPath: DefaultDataDirPath(),
		DBName:      "omnipool",
		InMemory:    false,
	}
}

// TRANSPORT CONFIG BELOW

type TransportConfig struct {
	ChannelAddress string `json:"channelAddress"` // this node's channel address on the transport layer
	Peers          []Peer `json:"peers"`          // the trusted counterpart channel per remote chain
	QuoteFeeNative uint64 `json:"quoteFeeNative"` // flat native fee quoted per outbound message
	RedeliverMaxS  int    `json:"redeliverMaxS"`  // max elapsed seconds for transport redelivery backoff
}

// Peer defines the trusted channel address for one remote chain
type Peer struct {
	ChainId        uint64 `json:"chainId"`        // the remote chain identifier
	ChannelAddress string `json:"channelAddress"` // the remote bridge channel address
}

// DefaultTransportConfig() returns the developer recommended transport configuration
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		ChannelAddress: "bridge/1",
		QuoteFeeNative: 0,
		RedeliverMaxS:  30,
	}
}

// PeerAddress() returns the configured channel address for a remote chain; empty if unknown
func (t *TransportConfig) PeerAddress(chainId uint64) string {
	for _, p := range t.Peers {
		if p.ChainId == chainId {
			return p.ChannelAddress
		}
	}
	return ""
}

// DefaultDataDirPath() returns the default data directory under the user home
func DefaultDataDirPath() string {
	// get the user home
	home, err := os.UserHomeDir()
	// if unable to get the user home
	if err != nil {
		// fatal error
		panic(err)
	}
	// exit with full default data directory path
	return filepath.Join(home, ".omnipool")
}

// NewConfigFromFile() populates a Config from a json file, falling back to defaults per field
func NewConfigFromFile(filePath string) (Config, ErrorI) {
	bz, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, ErrReadFile(err)
	}
	c := DefaultConfig()
	if e := UnmarshalJSON(bz, &c); e != nil {
		return Config{}, e
	}
	return c, nil
}

// WriteToFile() saves the Config object to a file in json form
func (c Config) WriteToFile(filepath string) ErrorI {
	configBz, err := MarshalJSONIndent(c)
	if err != nil {
		return err
	}
	if e := os.WriteFile(filepath, configBz, os.ModePerm); e != nil {
		return ErrWriteFile(e)
	}
	return nil
}
