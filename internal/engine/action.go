package engine

import (
	"fmt"
	"strings"
)

// Action names one of the moves a player can ask a turn to perform.
type Action uint8

const (
	RollDice Action = iota
	BuildRoad
	BuildSettlement
	BuildCity
	BuyDevelopmentCard
	PlayDevelopmentCard
	Collect
	Discard
	Exchange
	Trade
	MoveThief
	Pass
)

var actionNames = [...]string{
	RollDice:            "rollDice",
	BuildRoad:           "buildRoad",
	BuildSettlement:     "buildSettlement",
	BuildCity:           "buildCity",
	BuyDevelopmentCard:  "buyDevelopmentCard",
	PlayDevelopmentCard: "playDevelopmentCard",
	Collect:             "collect",
	Discard:             "discard",
	Exchange:            "exchange",
	Trade:               "trade",
	MoveThief:           "moveThief",
	Pass:                "pass",
}

// Actions returns every action in declaration order.
func Actions() []Action {
	out := make([]Action, len(actionNames))
	for i := range actionNames {
		out[i] = Action(i)
	}
	return out
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction resolves an action name, ignoring case.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if strings.EqualFold(n, name) {
			return Action(i), true
		}
	}
	return 0, false
}
