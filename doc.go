/*
Package dianti is a client for turn-based elevator simulations served over HTTP+JSON.

A session is opened with a bootstrap request naming the event, the building and the bot.
The simulator answers with a session token and the floor count. Each following request
carries the token and one batch of elevator commands; the simulator answers with the
world after that turn, until it reports running == false together with a score and a
replay link.

# Layout

  - pkg/domain: wire keys, commands, snapshots and the decoded World.
  - pkg/session: the protocol client (Bootstrap, Advance, accessors).
  - pkg/strategy: built-in command strategies.
  - pkg/runner: the turn loop and its Text/JSON reporters.
  - pkg/adapters: HTTP and in-memory transports.
  - pkg/observability: Prometheus metrics and audit logging hooks.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/dianti"
		"github.com/aretw0/dianti/pkg/domain"
		"github.com/aretw0/dianti/pkg/runner"
	)

	func main() {
		eng := dianti.New(dianti.WithHandler(runner.NewTextHandler(os.Stdout)))

		res, err := eng.Play(context.Background(), domain.SessionConfig{
			Event:    "secondspace2025",
			Building: domain.BuildingTinyRandom,
			Bot:      "my-bot",
			Sandbox:  true,
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Println("turns:", res.Turns)
	}
*/
package dianti
