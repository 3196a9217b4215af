// Package main runs a small in-process Kademlia network for manual
// exploration: it builds a swarm of nodes over the simnet test harness,
// bootstraps them through a single seed, and drives a put/get cycle
// against the resulting network, logging what happens at each step.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kadlab/kadht"
	"github.com/kadlab/kadht/internal/simnet"
)

// simConfig holds command-line configuration for a simulation run.
type simConfig struct {
	nodeCount  int
	k          int
	alpha      int
	idBits     int
	key        string
	value      string
	logLevel   string
	rpcTimeout time.Duration
}

func parseFlags() *simConfig {
	cfg := &simConfig{}
	flag.IntVar(&cfg.nodeCount, "nodes", 20, "number of nodes in the simulated swarm")
	flag.IntVar(&cfg.k, "k", 5, "bucket capacity / shortlist width")
	flag.IntVar(&cfg.alpha, "alpha", 3, "lookup parallelism factor")
	flag.IntVar(&cfg.idBits, "id-bits", 160, "identifier width in bits")
	flag.StringVar(&cfg.key, "key", "hello", "key to put and then get back")
	flag.StringVar(&cfg.value, "value", "world", "value to store under key")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.DurationVar(&cfg.rpcTimeout, "rpc-timeout", 2*time.Second, "per-RPC timeout")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	level, err := logrus.ParseLevel(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", cfg.logLevel, err)
		os.Exit(1)
	}
	logrus.SetLevel(level)

	if err := run(cfg); err != nil {
		logrus.WithError(err).Fatal("simulation failed")
	}
}

func run(cfg *simConfig) error {
	net := simnet.New()

	dhtCfg := kademlia.Config{
		IDBits:        cfg.idBits,
		K:             cfg.k,
		Alpha:         cfg.alpha,
		UseReferences: true,
		RPCTimeout:    cfg.rpcTimeout,
	}

	nodes := make([]*kademlia.Node, cfg.nodeCount)
	for i := 0; i < cfg.nodeCount; i++ {
		n, err := kademlia.NewNode(fmt.Sprintf("sim-node-%d", i), dhtCfg)
		if err != nil {
			return fmt.Errorf("creating node %d: %w", i, err)
		}
		nodes[i] = n
		net.Register(n)
	}

	seed := nodes[0].AsContact()
	ctx := context.Background()
	for i := 1; i < cfg.nodeCount; i++ {
		if err := nodes[i].Bootstrap(ctx, seed); err != nil {
			return fmt.Errorf("bootstrapping node %d: %w", i, err)
		}
	}
	logrus.WithField("nodes", cfg.nodeCount).Info("swarm bootstrapped")

	writer := kademlia.NewDHT(nodes[0], "kadsim")
	if err := writer.Put(ctx, cfg.key, []byte(cfg.value)); err != nil {
		return fmt.Errorf("put: %w", err)
	}
	logrus.WithFields(logrus.Fields{"key": cfg.key, "value": cfg.value}).Info("put succeeded")

	reader := kademlia.NewDHT(nodes[cfg.nodeCount-1], "kadsim")
	got, err := reader.Get(ctx, cfg.key)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}

	fmt.Printf("get(%q) from the last node in the swarm = %q\n", cfg.key, got)
	return nil
}
