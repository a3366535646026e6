// Package query wraps the chain state queries used by the chain clients:
// paginated bank balances over the SDK gRPC-over-ABCI bridge and CosmWasm
// smart contract state reads.
package query
