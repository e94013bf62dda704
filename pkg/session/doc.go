/*
Package session implements the simulation session protocol.

A Client bootstraps a session with the simulator, keeps the issued token, the
floor count and the turn counter, and submits one command batch per turn. The
stored snapshot is replaced only after a response has been fully validated, so
a failed call never leaves the session half updated.

Application errors reported by the simulator are warnings: they travel with
the Turn that carried them and never fail the call.
*/
package session
