// Package ballotengine owns the ballot ledger inside the
// election-operations context.
//
// The module records one immutable decision per (election, position, voter)
// triple, either a set of candidate votes or an explicit abstention, and
// computes live and final tallies from the ledger. Election structure is
// read through a directory port owned by the election service.
package ballotengine
