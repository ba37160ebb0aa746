// Package electionservice owns the election record store and lifecycle
// inside the election-operations context.
//
// The module covers election proposals and administrative review, position
// and candidate setup, the automatic upcoming/active/completed lifecycle,
// explicit administrative status writes, and cascade deletion. Business
// rules live in the application/domain layers; infrastructure stays behind
// ports and adapters.
package electionservice
