// Package cosmos implements the per-chain, per-network client of a Cosmos SDK
// chain. A Chain lazily connects to its node on Init and then serves balance,
// transaction, block height and wallet operations. RPC traffic is paced by a
// rate limiter, transaction lookups are cached, and denoms are resolved
// through the chain's asset list.
//
// Chains are obtained from a Registry keyed by "<chain>_<network>", which
// hands out one Chain per key until that Chain is closed.
package cosmos
