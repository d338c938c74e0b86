package rpccfg

import (
	"fmt"

	"github.com/torkelrogstad/bip300301/mainchain"
)

// rpcPorts holds the default RPC port the node listens on for each network.
var rpcPorts = map[mainchain.Network]string{
	mainchain.NetworkMain:     "8332",
	mainchain.NetworkTest:     "18332",
	mainchain.NetworkTestnet4: "48332",
	mainchain.NetworkSignet:   "38332",
	mainchain.NetworkRegtest:  "18443",
}

// chainDirs maps a network to the sub directory of the node's data dir that
// holds its cookie file.
var chainDirs = map[mainchain.Network]string{
	mainchain.NetworkMain:     "",
	mainchain.NetworkTest:     "testnet3",
	mainchain.NetworkTestnet4: "testnet4",
	mainchain.NetworkSignet:   "signet",
	mainchain.NetworkRegtest:  "regtest",
}

// DefaultRPCPort returns the port a node on the given network serves RPC on
// unless configured otherwise.
func DefaultRPCPort(network mainchain.Network) (string, error) {
	port, ok := rpcPorts[network]
	if !ok {
		return "", fmt.Errorf("unknown network: %v", network)
	}

	return port, nil
}
