/*
Package domain contains the data model shared by the dianti session client,
its transports and the decision strategies.

It is free of I/O. Everything that crosses the wire is described here: the
session configuration sent at bootstrap, the per-elevator commands sent every
turn, and the snapshot documents the simulator answers with.

# Key Entities

  - SessionConfig: immutable identity of a play-through (event, building, bot).
  - Command: one instruction for one elevator for one turn.
  - Snapshot: the raw world document returned by the server, kept verbatim.
  - World: a typed, read-only view over a Snapshot for strategies.
  - TransportError, ProtocolError, APIError: the error taxonomy.
*/
package domain
