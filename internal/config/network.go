package config

import "sort"

// DefaultNetwork is used when no network is configured.
const DefaultNetwork = "mainnet"

// Networks maps network names to public fullnode JSON-RPC endpoints.
var Networks = map[string]string{
	"mainnet":  "https://rpc.mainnet.sui.io:443",
	"testnet":  "https://fullnode.testnet.sui.io:443",
	"devnet":   "https://fullnode.devnet.sui.io:443",
	"localnet": "http://127.0.0.1:9000",
}

// NetworkNames returns the known network names in sorted order.
func NetworkNames() []string {
	names := make([]string, 0, len(Networks))
	for n := range Networks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
