// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

// Command mwtree loads integers into a multiway search tree and prints them
// back in sorted order. Values come from the arguments or, when there are
// none, from whitespace-separated standard input.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	multiway "github.com/absolutelightning/go-multiway-tree"
	"github.com/golang/glog"
)

func main() {
	capacity := flag.Int("capacity", multiway.DefaultMaxNodeElems, "Maximum elements per node")
	cache := flag.Int("cache", 0, "Location cache size, 0 disables it")
	reverse := flag.Bool("reverse", false, "Print in descending order")
	structure := flag.Bool("structure", false, "Print the node structure after the elements")
	find := flag.String("find", "", "Comma-separated values to look up")
	flag.Parse()
	defer glog.Flush()

	var in io.Reader = os.Stdin
	if flag.NArg() > 0 {
		in = strings.NewReader(strings.Join(flag.Args(), " "))
	}

	if err := run(os.Stdout, in, *capacity, *cache, *reverse, *structure, *find); err != nil {
		glog.Fatalf("mwtree: %v", err)
	}
}

func run(out io.Writer, in io.Reader, capacity, cache int, reverse, structure bool, find string) error {
	if capacity < 1 {
		return fmt.Errorf("invalid capacity %d", capacity)
	}
	if cache < 0 {
		return fmt.Errorf("invalid cache size %d", cache)
	}
	tree := multiway.New[int](capacity, multiway.WithLocationCache(cache))

	values, err := readValues(in)
	if err != nil {
		return err
	}
	for _, v := range values {
		if _, inserted := tree.Insert(v); !inserted {
			glog.V(1).Infof("duplicate %d ignored", v)
		}
	}
	stats := tree.Stats()
	glog.Infof("loaded %d values, %d distinct, %d nodes, depth %d", len(values), tree.Len(), stats.Nodes, stats.Depth)

	if reverse {
		sep := ""
		for v := range tree.Backward() {
			fmt.Fprint(out, sep, v)
			sep = " "
		}
	} else if _, err := tree.WriteTo(out); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if structure {
		tree.DFSPrintTree(out)
	}

	if find != "" {
		for _, field := range strings.Split(find, ",") {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return fmt.Errorf("find: %w", err)
			}
			fmt.Fprintf(out, "%d: %t\n", v, tree.Contains(v))
		}
		if cache > 0 {
			stats = tree.Stats()
			glog.V(1).Infof("cache hits %d misses %d", stats.CacheHits, stats.CacheMisses)
		}
	}
	return nil
}

func readValues(in io.Reader) ([]int, error) {
	var values []int
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, scanner.Err()
}
