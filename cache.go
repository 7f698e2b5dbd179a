// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package multiway

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// locationCache maps elements to the node holding them. Elements never move
// to another node once placed, since nodes are neither split nor merged and
// nothing is deleted, so an entry never goes stale while the arena lives.
type locationCache[T any] interface {
	get(e T) (nodeID, bool)
	add(e T, id nodeID)
	// fresh returns an empty cache of the same size.
	fresh() locationCache[T]
	counters() (hits, misses uint64)
}

type lruLocationCache[T comparable] struct {
	size   int
	lru    *lru.Cache[T, nodeID]
	hits   uint64
	misses uint64
}

func newLRULocationCache[T comparable](size int) *lruLocationCache[T] {
	l, err := lru.New[T, nodeID](size)
	if err != nil {
		panic(fmt.Sprintf("multiway: location cache: %v", err))
	}
	return &lruLocationCache[T]{
		size: size,
		lru:  l,
	}
}

func (c *lruLocationCache[T]) get(e T) (nodeID, bool) {
	id, ok := c.lru.Get(e)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return id, ok
}

func (c *lruLocationCache[T]) add(e T, id nodeID) {
	c.lru.Add(e, id)
}

func (c *lruLocationCache[T]) fresh() locationCache[T] {
	return newLRULocationCache[T](c.size)
}

func (c *lruLocationCache[T]) counters() (uint64, uint64) {
	return c.hits, c.misses
}
