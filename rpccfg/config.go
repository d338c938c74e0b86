package rpccfg

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/torkelrogstad/bip300301/mainchain"
)

var (
	defaultMainchainDir = btcutil.AppDataDir("bitcoin", false)
)

const (
	defaultRPCHost = "localhost"
	defaultNetwork = string(mainchain.NetworkRegtest)

	// defaultTimeout bounds a single call made by the command line
	// client.
	defaultTimeout = 30 * time.Second
)

// Mainchain holds the configuration options for reaching a drivechain
// enabled node over JSON-RPC.
//
//nolint:lll
type Mainchain struct {
	Dir       string        `long:"dir" description:"The base directory that contains the node's data. Used to locate the auth cookie if neither rpcuser nor rpccookie is set."`
	RPCHost   string        `long:"rpchost" description:"The node's rpc listening address. If a port is omitted, then the default port for the selected network will be used."`
	RPCUser   string        `long:"rpcuser" description:"Username for RPC connections"`
	RPCPass   string        `long:"rpcpass" default-mask:"-" description:"Password for RPC connections"`
	RPCCookie string        `long:"rpccookie" description:"Authentication cookie file for RPC connections. If not set, will default to .cookie under 'dir'."`
	Network   string        `long:"network" description:"The network the node runs on." choice:"main" choice:"test" choice:"testnet4" choice:"signet" choice:"regtest"`
	Timeout   time.Duration `long:"timeout" description:"Timeout applied to each RPC call."`
}

// DefaultMainchain returns a default configuration for a local regtest node.
func DefaultMainchain() *Mainchain {
	return &Mainchain{
		Dir:     defaultMainchainDir,
		RPCHost: defaultRPCHost,
		Network: defaultNetwork,
		Timeout: defaultTimeout,
	}
}

// Validate checks the configuration and fills in the default port on the RPC
// host.
func (m *Mainchain) Validate() error {
	network, err := mainchain.ParseNetwork(m.Network)
	if err != nil {
		return err
	}

	if m.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if m.RPCUser != "" && m.RPCCookie != "" {
		return errors.New("rpcuser and rpccookie are mutually exclusive")
	}
	if m.RPCUser == "" && m.RPCPass != "" {
		return errors.New("rpcpass set without rpcuser")
	}

	if m.RPCHost == "" {
		return errors.New("rpchost must be set")
	}
	port, err := DefaultRPCPort(network)
	if err != nil {
		return err
	}
	m.RPCHost = verifyPort(m.RPCHost, port)

	return nil
}

// CookiePath returns the cookie file used for authentication, or an empty
// string if explicit credentials are configured.
func (m *Mainchain) CookiePath() string {
	switch {
	case m.RPCUser != "":
		return ""

	case m.RPCCookie != "":
		return m.RPCCookie
	}

	chainDir := chainDirs[mainchain.Network(m.Network)]

	return filepath.Join(m.Dir, chainDir, ".cookie")
}

// ConnConfig converts the configuration into the connection settings of an
// rpcclient. Validate must be called first.
func (m *Mainchain) ConnConfig() (*rpcclient.ConnConfig, error) {
	cfg := &rpcclient.ConnConfig{
		Host:                 m.RPCHost,
		DisableConnectOnNew:  true,
		DisableAutoReconnect: false,
		DisableTLS:           true,
		HTTPPostMode:         true,
	}

	cookiePath := m.CookiePath()
	if cookiePath == "" {
		cfg.User = m.RPCUser
		cfg.Pass = m.RPCPass

		return cfg, nil
	}

	user, pass, err := ReadCookieFile(cookiePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read cookie: %w", err)
	}
	cfg.User = user
	cfg.Pass = pass

	return cfg, nil
}

// verifyPort makes sure that an address string has both a host and a port.
// If there is no port found, the default port is appended.
func verifyPort(address string, defaultPort string) string {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		// A bare port number maps to localhost.
		if _, err := strconv.Atoi(address); err == nil {
			return net.JoinHostPort(defaultRPCHost, address)
		}

		// Bracketed IPv6 hosts already carry their brackets.
		if strings.HasPrefix(address, "[") {
			return address + ":" + defaultPort
		}

		return net.JoinHostPort(address, defaultPort)
	}

	if port == "" {
		port = defaultPort
	}
	if host == "" {
		host = defaultRPCHost
	}

	return net.JoinHostPort(host, port)
}
