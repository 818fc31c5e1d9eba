package config

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/viper"
)

const (
	workersKey          = "workers"
	offlineKey          = "offline"
	refreshKey          = "refresh"
	platformKey         = "platform"
	includeSnapshotsKey = "include-snapshots"
)

const DefaultWorkers = 8

// Keys lists every setting that can be changed with Set.
func Keys() []string {
	keys := []string{workersKey, offlineKey, refreshKey, platformKey, includeSnapshotsKey}
	sort.Strings(keys)
	return keys
}

func Workers() int {
	if n := viper.GetInt(workersKey); n > 0 {
		return n
	}
	return DefaultWorkers
}

func Offline() bool {
	return viper.GetBool(offlineKey)
}

func Refresh() bool {
	return viper.GetBool(refreshKey)
}

// Platform is the configured platform override, or "" to use the host.
func Platform() string {
	return viper.GetString(platformKey)
}

func IncludeSnapshots() bool {
	return viper.GetBool(includeSnapshotsKey)
}

// Get returns the current value of key as it would be written to the
// config file.
func Get(key string) (any, error) {
	if !known(key) {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	return viper.Get(key), nil
}

// Set parses value according to the type of key and stores it. Call Save
// to persist the change.
func Set(key, value string) error {
	switch key {
	case workersKey:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		if n < 1 {
			return fmt.Errorf("%s must be at least 1", key)
		}
		viper.Set(key, n)
	case offlineKey, refreshKey, includeSnapshotsKey:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		viper.Set(key, b)
	case platformKey:
		viper.Set(key, value)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func known(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
