package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "GREENCART_CONFIG_FILE"

type httpTimeouts struct {
	Handler    time.Duration `mapstructure:"handler"`
	ReadHeader time.Duration `mapstructure:"read_header"`
	Idle       time.Duration `mapstructure:"idle"`
}

type storefront struct {
	CatalogPath         string  `mapstructure:"catalog_path"`
	CarbonBaseline      float64 `mapstructure:"carbon_baseline"`
	RecommendationLimit int     `mapstructure:"recommendation_limit"`
}

type topics struct {
	ShoppingEvents     string `mapstructure:"shopping_events"`
	TrendingGroupTable string `mapstructure:"trending_group_table"`
}

type consumers struct {
	EventArchiverGroup string `mapstructure:"event_archiver_group"`
}

type broker struct {
	Enabled            bool      `mapstructure:"enabled"`
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type Config struct {
	LogLevel         slog.Level   `mapstructure:"log_level"`
	HTTPServerAddr   string       `mapstructure:"http_server_addr"`
	TrendingHTTPAddr string       `mapstructure:"trending_http_addr"`
	HTTPTimeouts     httpTimeouts `mapstructure:"http_timeouts"`
	SQLDB            string       `mapstructure:"sql_db"`
	Storefront       storefront   `mapstructure:"storefront"`
	Broker           broker       `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())
	viper.SetDefault("storefront.carbon_baseline", 5)
	viper.SetDefault("storefront.recommendation_limit", 4)
	viper.SetDefault("http_timeouts.handler", "10s")
	viper.SetDefault("http_timeouts.read_header", "5s")
	viper.SetDefault("http_timeouts.idle", "30s")

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	TrendingHTTPAddr=%q
	HTTPTimeouts=%v/%v/%v
	SQLDB=%q

	Storefront:
	CatalogPath=%q
	CarbonBaseline=%v
	RecommendationLimit=%d

	BrokerConfig:
	Enabled=%v
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		ShoppingEvents=%q
		TrendingGroupTable=%q
	Consumers:
		EventArchiverGroup=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.TrendingHTTPAddr,
		c.HTTPTimeouts.Handler, c.HTTPTimeouts.ReadHeader, c.HTTPTimeouts.Idle,
		c.SQLDB,
		c.Storefront.CatalogPath,
		c.Storefront.CarbonBaseline,
		c.Storefront.RecommendationLimit,
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.ShoppingEvents,
		c.Broker.Topics.TrendingGroupTable,
		c.Broker.Consumers.EventArchiverGroup,
	)
}
