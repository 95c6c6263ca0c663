package clientengine

import "wizardnet/internal/wire"

const chatLogCapacity = 200

// apply folds one server event into the projection — the handler table
// spec.md §4.6 calls for, one arm per wire.ServerEvent variant.
func (p *GameStateProjection) apply(ev wire.ServerEvent) {
	switch e := ev.(type) {
	case wire.SetUUID:
		p.SelfID = e.UUID

	case wire.UpdatePlayerList:
		p.Players = e.Players

	case wire.PlayerChatMessage:
		p.ChatLog = append(p.ChatLog, e)
		if len(p.ChatLog) > chatLogCapacity {
			p.ChatLog = p.ChatLog[len(p.ChatLog)-chatLogCapacity:]
		}

	case wire.SetGamePhase:
		p.Phase = e.Phase

	case wire.SetHand:
		p.Hand = e.Hand
		sortHand(p.Hand)

	case wire.SetTrumpSuit:
		p.TrumpSuit = e.TrumpSuit

	case wire.RequestSelectTrumpColor:
		// No projection state changes, and the snapshot keeps no record of
		// this event. The server sends no SetPlayerOnTurn with it, so
		// PlayerOnTurn is not updated here; a pending dealer choice shows in
		// the snapshot as TrumpSuit.NeedsDealerChoice().

	case wire.UpdateScoreBoard:
		p.ScoreBoard = e.ScoreBoard

	case wire.SetPlayerOnTurn:
		p.PlayerOnTurn = e.Index

	case wire.PlayerPlayCard:
		p.PlayedCards = append(p.PlayedCards, PlayedCard{UUID: e.UUID, Card: e.Card})

	case wire.ClearPlayedCards:
		p.PlayedCards = nil

	case wire.WaitingForReady:
		p.WaitingForReady = e.Waiting

	case wire.PlayerReady:
		p.ReadyStates[e.UUID] = e.Ready
	}
}
