// Package game implements the blackjack trainer's round loop.
//
// The main type is Engine, which owns the shoe, the mistake replay queue and
// the clean-decision counter, and drives one round at a time through
// dealing, left-to-right hand play, dealer play and scoring.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	e := game.NewEngine(rng, presenter, logger)
//	if err := e.Run(ctx); err != nil {
//	    // only non-quit errors reach here
//	}
//
// # Presenters
//
// The engine never touches a terminal. Everything the player sees and every
// choice they make flows through a Presenter, whose AwaitAction is the only
// place a round suspends. A presenter returns ErrQuit (or the context's
// error) to abort the session; the engine returns it at once without
// finishing the round.
//
// # Deterministic Testing
//
// Stack the cards a test needs in front of the shoe:
//
//	shoe := deck.NewShoeFromCards(rng, deck.MustParseCards("8s8h6dTs3c..."))
//	e := game.NewEngine(rng, presenter, logger, game.WithShoe(shoe), game.WithDealBias(1, 1))
//
// # Architecture
//
// Engine delegates to small collaborators:
//   - deck.Shoe: the six-deck card supply, refilled below 52 cards
//   - strategy.Advise: the correct action at every decision point
//   - Observer: optional listeners for decisions and finished rounds
package game
