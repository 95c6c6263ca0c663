// Command wizardclient is a line-oriented REPL over clientengine.Client —
// the seam where a graphical front-end would sit instead (out of scope
// here). Structured after pokerctl's flag-plus-subcommand shape, but
// interactive rather than one-shot since a Wizard table needs a live view
// of whose turn it is.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"wizardnet/internal/card"
	"wizardnet/internal/clientengine"
	"wizardnet/internal/wire"
)

func main() {
	url := flag.String("url", "ws://127.0.0.1:18080/ws", "table websocket URL")
	username := flag.String("username", "", "display name (required)")
	flag.Parse()

	if strings.TrimSpace(*username) == "" {
		fmt.Fprintln(os.Stderr, "wizardclient: -username is required")
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, snapshots, err := clientengine.Connect(ctx, *url, *username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wizardclient: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect()

	go printSnapshots(snapshots)
	runREPL(client)
}

func printSnapshots(snapshots <-chan clientengine.Snapshot) {
	for snap := range snapshots {
		fmt.Printf("\n[%s] players=%d phase=%s turn=%d hand=%v\n",
			snap.SelfID, len(snap.Players), snap.Phase, snap.PlayerOnTurn, snap.Hand)
		printScores(snap)
		if snap.ServerShutdown {
			fmt.Println("server closed the connection")
		}
	}
}

// printScores renders the current round's cumulative scores, humanizing
// the (possibly negative) running totals for readability at the terminal.
func printScores(snap clientengine.Snapshot) {
	if snap.ScoreBoard == nil || snap.ScoreBoard.CurrentRound == 0 {
		return
	}
	row := snap.ScoreBoard.Rounds[snap.ScoreBoard.CurrentRound-1]
	for i, p := range snap.ScoreBoard.Players {
		if i >= len(row) || row[i].Score == nil {
			continue
		}
		fmt.Printf("  %-16s %s\n", p.Username, humanize.Comma(int64(*row[i].Score)))
	}
}

// runREPL reads one command per line until EOF. Commands:
//
//	start                  StartGame
//	bid N                  MakeBid{N}
//	trump Blue|Red|Green|Yellow  SetTrumpColor
//	play COLOR VALUE       PlayCard (VALUE is Fool, Wizard, or 1..13)
//	ready                  Ready
//	say TEXT...            SendChatMessage
//	quit                   disconnect and exit
func runREPL(client *clientengine.Client) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		switch cmd {
		case "start":
			client.Send(wire.StartGame{})

		case "bid":
			if len(args) != 1 {
				fmt.Println("usage: bid N")
				continue
			}
			n, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				fmt.Println("bid: invalid number")
				continue
			}
			client.Send(wire.MakeBid{Bid: uint8(n)})

		case "trump":
			if len(args) != 1 {
				fmt.Println("usage: trump Blue|Red|Green|Yellow")
				continue
			}
			color, ok := card.ParseColor(args[0])
			if !ok {
				fmt.Println("trump: unknown color")
				continue
			}
			client.Send(wire.SetTrumpColor{Color: color})

		case "play":
			c, ok := parseCard(args)
			if !ok {
				fmt.Println("usage: play COLOR Fool|Wizard|N")
				continue
			}
			client.Send(wire.PlayCard{Card: c})

		case "ready":
			client.Send(wire.Ready{})

		case "say":
			client.Send(wire.SendChatMessage{Content: strings.Join(args, " ")})

		case "quit":
			return

		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}
	}
}

func parseCard(args []string) (card.Card, bool) {
	if len(args) != 2 {
		return card.Card{}, false
	}
	color, ok := card.ParseColor(args[0])
	if !ok {
		return card.Card{}, false
	}
	switch args[1] {
	case "Fool":
		return card.Card{Color: color, Value: card.FoolValue()}, true
	case "Wizard":
		return card.Card{Color: color, Value: card.WizardValue()}, true
	default:
		n, err := strconv.ParseUint(args[1], 10, 8)
		if err != nil {
			return card.Card{}, false
		}
		v, err := card.SimpleValue(uint8(n))
		if err != nil {
			return card.Card{}, false
		}
		return card.Card{Color: color, Value: v}, true
	}
}
