/*
Package strategy provides the decision strategies that choose each turn's
commands, and a registry to select them by name.

  - random: every elevator gets a random direction and action.
  - updown: every elevator sweeps from the ground floor to the top and back,
    stopping where a passenger wants out or a hall call matches its direction.
*/
package strategy
