package gameserver

import "errors"

var (
	// ErrGameInProgress is returned by Join when a peer tries to enter
	// while phase != Lobby (spec.md §4.4, §5 "Lobby admission race").
	// session.Accept then closes the transport; by that point SetUUID has
	// already been sent, since Accept's own Lobby check runs before it.
	ErrGameInProgress = errors.New("gameserver: game already in progress")
	// ErrPlayerCountOutOfRange is returned by Join when accepting the peer
	// would exceed the table's [3,6] player bound. A StartGame outside the
	// bound is dropped silently and returns no error.
	ErrPlayerCountOutOfRange = errors.New("gameserver: player count out of range")
	// ErrUnknownPlayer names an id not present in the current player table.
	// No function in this package returns it: events from unknown senders
	// are dropped silently.
	ErrUnknownPlayer = errors.New("gameserver: unknown player")
)

const (
	minPlayers = 3
	maxPlayers = 6
	deckSize   = 60
)
