/*
Package claims gates the creation of vesting schedules behind a Merkle allowlist.

An issuer commits an arbitrarily large set of (beneficiary, schedule parameters)
pairs into a single Merkle root. Each beneficiary later presents their parameters
together with a proof of inclusion and, if the proof verifies against the current
root and the derived leaf was not consumed before, the coordinator records the
leaf as consumed and delegates schedule creation to the external vesting engine.
Marking and delegation run inside one leveldb transaction, so a rejected schedule
rolls the consumed mark back and a successful one can never be claimed twice.

The root can be rotated by callers holding the admin role; observers can
subscribe to rotation notifications to republish trees and proofs.
*/
package claims
