package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

const (
	// HTTPListeningPortKey is the port where the REST interface listens on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is the type of database, either badger or inmemory
	DBTypeKey = "DB_TYPE"
	// TxMaxRetriesKey is the max number of attempts of a conflicting db transaction
	TxMaxRetriesKey = "TX_MAX_RETRIES"
	// EscrowProgramIDKey is the base58 id escrow addresses are derived from
	EscrowProgramIDKey = "ESCROW_PROGRAM_ID"
	// MarketplaceProgramIDKey is the base58 id marketplace addresses are derived from
	MarketplaceProgramIDKey = "MARKETPLACE_PROGRAM_ID"
	// EnableFaucetKey allows anyone to airdrop lamports via the REST interface
	EnableFaucetKey = "ENABLE_FAUCET"
	// RateLimitKey is the max number of requests per second served by the REST interface
	RateLimitKey = "RATE_LIMIT"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval in seconds for printing runtime statistics
	StatsIntervalKey = "STATS_INTERVAL"
	// EnableWebhooksKey enables the notification of events to registered webhooks
	EnableWebhooksKey = "ENABLE_WEBHOOKS"
	// WebhookTimeoutKey is the timeout in seconds of a webhook request
	WebhookTimeoutKey = "WEBHOOK_TIMEOUT"

	DbLocation       = "db"
	ProfilerLocation = "stats"

	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("tdex-custody", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("CUSTODY")
	vip.AutomaticEnv()

	vip.SetDefault(HTTPListeningPortKey, 9945)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(TxMaxRetriesKey, 10)
	vip.SetDefault(EscrowProgramIDKey, domain.DefaultEscrowProgramID.String())
	vip.SetDefault(
		MarketplaceProgramIDKey, domain.DefaultMarketplaceProgramID.String(),
	)
	vip.SetDefault(EnableFaucetKey, false)
	vip.SetDefault(RateLimitKey, 100)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)
	vip.SetDefault(EnableWebhooksKey, true)
	vip.SetDefault(WebhookTimeoutKey, 15)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDBDir returns the path of the badger store, empty for the inmemory type.
func GetDBDir() string {
	if GetString(DBTypeKey) == DBInMemory {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetStatsInterval returns the interval of the runtime statistics printer.
func GetStatsInterval() time.Duration {
	return time.Duration(GetInt(StatsIntervalKey)) * time.Second
}

// GetWebhookTimeout returns the timeout of a single webhook request.
func GetWebhookTimeout() time.Duration {
	return time.Duration(GetInt(WebhookTimeoutKey)) * time.Second
}

// GetEscrowProgramID returns the configured escrow program id. The value is
// validated at startup.
func GetEscrowProgramID() address.Address {
	return address.MustParseAddress(GetString(EscrowProgramIDKey))
}

// GetMarketplaceProgramID returns the configured marketplace program id. The
// value is validated at startup.
func GetMarketplaceProgramID() address.Address {
	return address.MustParseAddress(GetString(MarketplaceProgramIDKey))
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	if port := GetInt(HTTPListeningPortKey); port <= 0 || port > 65535 {
		return fmt.Errorf("http listening port must be in range [1, 65535]")
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"db type must be either '%s' or '%s'", DBBadger, DBInMemory,
		)
	}

	if GetInt(TxMaxRetriesKey) <= 0 {
		return fmt.Errorf("tx max retries must be a positive number")
	}
	if GetInt(RateLimitKey) <= 0 {
		return fmt.Errorf("rate limit must be a positive number")
	}
	if GetBool(EnableProfilerKey) && GetInt(StatsIntervalKey) <= 0 {
		return fmt.Errorf("stats interval must be a positive number")
	}
	if GetBool(EnableWebhooksKey) && GetInt(WebhookTimeoutKey) <= 0 {
		return fmt.Errorf("webhook timeout must be a positive number")
	}

	for _, key := range []string{EscrowProgramIDKey, MarketplaceProgramIDKey} {
		if _, err := address.ParseAddress(GetString(key)); err != nil {
			return fmt.Errorf("%s is not a valid program id: %s", key, err)
		}
	}
	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if GetString(DBTypeKey) == DBBadger {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
			return err
		}
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
