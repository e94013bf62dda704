/*
Package ports defines the driven ports (interfaces) for the dianti session client.

These interfaces decouple the session protocol from external implementations,
allowing the client to talk to the real simulator over HTTP or to a scripted
transport in tests, and the driving loop to use any decision strategy.

# Key Interfaces

  - Transport: Posts one JSON document to an endpoint and returns the parsed reply.
  - Strategy: Chooses the command batch for the next turn from the latest world.
*/
package ports
