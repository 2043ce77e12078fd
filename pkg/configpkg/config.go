// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver      string `mapstructure:"DB_DRIVER"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Currency      string `mapstructure:"CURRENCY"`
	Environement  string `mapstructure:"GO_ENV"`

	// EntryFeeCeiling caps any single wager or competition entry fee in
	// minor units, regardless of per-category bounds.
	EntryFeeCeiling int64 `mapstructure:"ENTRY_FEE_CEILING"`

	// HabitSuccessBonusBps and HabitFailRefundBps override the default
	// habit-staking payout rates, expressed in basis points of the stake.
	HabitSuccessBonusBps int64 `mapstructure:"HABIT_SUCCESS_BONUS_BPS"`
	HabitFailRefundBps   int64 `mapstructure:"HABIT_FAIL_REFUND_BPS"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
