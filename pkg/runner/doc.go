/*
Package runner implements the driving loop and output orchestration for a
simulation session.

It acts as the bridge between the session client, a decision strategy and
the outside world. The runner asks the strategy for a command batch, submits
it, reports the turn through a pluggable handler and repeats until the
simulator reports the end of the simulation.

# Key Components

  - Runner: The loop. It stops on the simulator's signal, a turn limit,
    cancellation or the first fatal error.
  - IOHandler: Decouples how progress is reported (text, JSON lines).
  - TextHandler: The classic "Turn: N" / "Error: ..." / "Score:" output.
  - JSONHandler: One JSON object per event for machine consumers.

# Usage

	client, _, err := session.Start(ctx, httpadapter.NewClient(), cfg)
	if err != nil {
		return err
	}
	r := runner.NewRunner(
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
		runner.WithMaxTurns(1000),
	)
	result, err := r.Run(ctx, client, strategy.NewUpDown(strategy.Options{}))
*/
package runner
