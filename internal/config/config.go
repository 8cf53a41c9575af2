package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// NetworkIDKey is the id of the network the wallet operates on, ie.
	// mainnet, testnet or undeployed
	NetworkIDKey = "NETWORK_ID"
	// IndexerUrlKey is the GraphQL endpoint of the ledger indexer
	IndexerUrlKey = "INDEXER_URL"
	// NodeUrlKey is the websocket RPC endpoint of the node transactions are
	// submitted to
	NodeUrlKey = "NODE_URL"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// ListeningPortKey is the port where the HTTP connector interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// WalletSeedKey is the hex encoded 32 byte seed of the wallet
	WalletSeedKey = "WALLET_SEED"
	// FeeKey is the flat fee, in native token units, paid by every
	// balancing transaction
	FeeKey = "FEE"
	// IndexerPollIntervalKey is the interval in milliseconds between two
	// refreshes of the wallet's unspents
	IndexerPollIntervalKey = "INDEXER_POLL_INTERVAL"
	// IndexerRateLimitKey is the max number of requests per second made to
	// the indexer
	IndexerRateLimitKey = "INDEXER_RATE_LIMIT"
	// CoinLockExpiryKey is the duration in seconds of the lock on unspents
	// reserved for a recipe, before they can be selected again
	CoinLockExpiryKey = "COIN_LOCK_EXPIRY"

	// DBBadger ...
	DBBadger = "badger"
	// DBInMemory ...
	DBInMemory = "inmemory"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("mentorship-wallet", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("MENTOR")
	vip.AutomaticEnv()

	vip.SetDefault(NetworkIDKey, "undeployed")
	vip.SetDefault(IndexerUrlKey, "http://127.0.0.1:8088/api/v3/graphql")
	vip.SetDefault(NodeUrlKey, "ws://127.0.0.1:9944")
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(ListeningPortKey, 9932)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(FeeKey, 1000)
	vip.SetDefault(IndexerPollIntervalKey, 2000)
	vip.SetDefault(IndexerRateLimitKey, 10)
	vip.SetDefault(CoinLockExpiryKey, 120)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the path of the badger datadir, or an empty string if
// the daemon is configured to run with an inmemory storage.
func GetDbDir() string {
	if GetString(DBTypeKey) == DBInMemory {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetIndexerPollInterval ...
func GetIndexerPollInterval() time.Duration {
	return time.Duration(GetInt(IndexerPollIntervalKey)) * time.Millisecond
}

// GetCoinLockExpiry ...
func GetCoinLockExpiry() time.Duration {
	return time.Duration(GetInt(CoinLockExpiryKey)) * time.Second
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if len(GetString(NetworkIDKey)) <= 0 {
		return fmt.Errorf("missing network id")
	}

	if !vip.IsSet(WalletSeedKey) {
		return fmt.Errorf("missing wallet seed")
	}

	if err := validateUrl(GetString(IndexerUrlKey), "http", "https"); err != nil {
		return fmt.Errorf("invalid indexer url: %s", err)
	}
	if err := validateUrl(GetString(NodeUrlKey), "ws", "wss"); err != nil {
		return fmt.Errorf("invalid node url: %s", err)
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"db type must be either %s or %s, got %s", DBBadger, DBInMemory, dbType,
		)
	}

	if GetInt(IndexerPollIntervalKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", IndexerPollIntervalKey)
	}
	if GetInt(IndexerRateLimitKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", IndexerRateLimitKey)
	}
	if GetInt(CoinLockExpiryKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", CoinLockExpiryKey)
	}

	return nil
}

func validateUrl(rawUrl string, schemes ...string) error {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return err
	}
	for _, scheme := range schemes {
		if u.Scheme == scheme && len(u.Host) > 0 {
			return nil
		}
	}
	return fmt.Errorf("scheme must be one of %v", schemes)
}

func initDatadir() error {
	if GetString(DBTypeKey) != DBBadger {
		return makeDirectoryIfNotExists(GetDatadir())
	}
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
