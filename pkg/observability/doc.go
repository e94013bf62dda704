/*
Package observability provides lifecycle hooks for monitoring a simulation
session: Prometheus metrics for turns, simulator errors and latency, and a
structured audit log of every lifecycle event.
*/
package observability
