// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

import "fmt"

// Option configures a tree at construction.
type Option func(*config)

type config struct {
	locationCacheSize int
}

// WithLocationCache remembers, for up to size recently inserted or found
// elements, which node holds them so later lookups skip the descent. Only
// trees built with New accept it. A size of zero disables the cache.
func WithLocationCache(size int) Option {
	return func(c *config) {
		c.locationCacheSize = size
	}
}

func newConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.locationCacheSize < 0 {
		panic(fmt.Sprintf("multiway: invalid location cache size %d", cfg.locationCacheSize))
	}
	return cfg
}
