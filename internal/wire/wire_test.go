package wire

import (
	"encoding/json"
	"strings"
	"testing"

	"wizardnet/internal/card"
)

func TestClientEvent_RoundTrip(t *testing.T) {
	cases := []ClientEvent{
		SetUsername{Username: "alice"},
		SendChatMessage{Content: "hi"},
		StartGame{},
		MakeBid{Bid: 2},
		SetTrumpColor{Color: card.Yellow},
		PlayCard{Card: func() card.Card { c, _ := card.New(card.Red, 0); return c }()},
		Ready{},
	}
	for _, want := range cases {
		data, err := EncodeClientEvent(want)
		if err != nil {
			t.Fatalf("encode %T: %v", want, err)
		}
		got, err := DecodeClientEvent(data)
		if err != nil {
			t.Fatalf("decode %T: %v", want, err)
		}
		if got != want {
			t.Errorf("round trip mismatch for %T: got %+v, want %+v", want, got, want)
		}
	}
}

func TestClientEvent_TypeTagIsFlattened(t *testing.T) {
	data, err := EncodeClientEvent(MakeBid{Bid: 3})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m["type"] != "MakeBid" {
		t.Fatalf("type = %v, want MakeBid", m["type"])
	}
	if m["bid"] != float64(3) {
		t.Fatalf("bid = %v, want 3", m["bid"])
	}
}

func TestDecodeClientEvent_UnknownTypeErrors(t *testing.T) {
	_, err := DecodeClientEvent([]byte(`{"type":"Nonsense"}`))
	if err == nil {
		t.Fatal("expected an error for an unknown event type")
	}
}

func TestDecodeClientEvent_MalformedFrame(t *testing.T) {
	_, err := DecodeClientEvent([]byte(`not json`))
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestServerEvent_RoundTrip(t *testing.T) {
	cases := []ServerEvent{
		SetUUID{UUID: "11111111-1111-1111-1111-111111111111"},
		UpdatePlayerList{Players: []PlayerInfo{{Username: "alice", ID: "11111111-1111-1111-1111-111111111111"}}},
		PlayerChatMessage{Username: "alice", UUID: "11111111-1111-1111-1111-111111111111", Content: "hi"},
		SetGamePhase{Phase: Bidding},
		SetHand{Hand: []card.Card{func() card.Card { c, _ := card.New(card.Blue, 5); return c }()}},
		RequestSelectTrumpColor{},
		SetPlayerOnTurn{Index: 2},
		ClearPlayedCards{},
		WaitingForReady{Waiting: true},
		PlayerReady{UUID: "11111111-1111-1111-1111-111111111111", Ready: true},
	}
	for _, want := range cases {
		data, err := EncodeServerEvent(want)
		if err != nil {
			t.Fatalf("encode %T: %v", want, err)
		}
		got, err := DecodeServerEvent(data)
		if err != nil {
			t.Fatalf("decode %T: %v", want, err)
		}
		gotData, _ := EncodeServerEvent(got)
		if string(gotData) != string(data) {
			t.Errorf("round trip mismatch for %T: got %s, want %s", want, gotData, data)
		}
	}
}

func TestPlayerInfo_MarshalsAsTuple(t *testing.T) {
	data, err := json.Marshal(PlayerInfo{Username: "alice", ID: "abc"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["alice","abc"]` {
		t.Fatalf("got %s, want [\"alice\",\"abc\"]", data)
	}
}

func TestGamePhase_MarshalsAsBareString(t *testing.T) {
	data, err := json.Marshal(Playing)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"Playing"` {
		t.Fatalf("got %s, want \"Playing\"", data)
	}
}

func TestGamePhase_UnmarshalUnknownErrors(t *testing.T) {
	var p GamePhase
	err := json.Unmarshal([]byte(`"Nonsense"`), &p)
	if err == nil {
		t.Fatal("expected an error for an unknown phase")
	}
	if !strings.Contains(err.Error(), "Nonsense") {
		t.Fatalf("error %v should mention the bad value", err)
	}
}

func TestDecodeServerEvent_UnknownTypeErrors(t *testing.T) {
	_, err := DecodeServerEvent([]byte(`{"type":"Nonsense"}`))
	if err == nil {
		t.Fatal("expected an error for an unknown event type")
	}
}
