package actions

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/registry"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

func newDispatcher(t *testing.T, seed int64) *Dispatcher {
	t.Helper()
	g, err := engine.New(engine.Options{Seed: seed})
	require.NoError(t, err)
	return New(g)
}

func mustArgs(t *testing.T, tokens ...string) registry.Args {
	t.Helper()
	args, err := ParseArgs(tokens)
	require.NoError(t, err)
	return args
}

// placeAll plays the initial round through the dispatcher.
func placeAll(t *testing.T, d *Dispatcher) {
	t.Helper()
	g := d.Game()
	for {
		turn, ok := g.Turn().(*engine.InitialTurn)
		if !ok {
			return
		}
		p := turn.Player()

		var settled *engine.Corner
		for _, c := range g.Board().Corners() {
			if turn.CanBuildSettlement(p, c).OK() {
				settled = c
				break
			}
		}
		require.NotNil(t, settled)
		require.NoError(t, d.ExecuteAction(p.ID(), "buildSettlement", mustArgs(t, "corners="+strconv.Itoa(int(settled.ID())))))

		built := false
		for _, id := range settled.AdjacentCorners() {
			c, err := g.Board().Corner(id)
			require.NoError(t, err)
			if !turn.CanBuildRoad(p, settled, c).OK() {
				continue
			}
			corners := strconv.Itoa(int(settled.ID())) + "," + strconv.Itoa(int(id))
			require.NoError(t, d.ExecuteAction(p.ID(), "buildRoad", mustArgs(t, "corners="+corners)))
			built = true
			break
		}
		require.True(t, built)
		require.NoError(t, d.ExecuteAction(p.ID(), "pass", registry.Args{}))
	}
}

func TestEveryActionRegistered(t *testing.T) {
	list := registry.List()
	require.Len(t, list, len(engine.Actions()))
	for i, a := range engine.Actions() {
		assert.Equal(t, a, list[i].Action)
		assert.True(t, registry.Exists(a.String()))
	}
}

func TestAvailableActionsInitialTurn(t *testing.T) {
	d := newDispatcher(t, 1)

	got, err := d.AvailableActions(0)
	require.NoError(t, err)
	assert.Equal(t, []engine.Action{engine.BuildSettlement}, got)

	got, err = d.AvailableActions(1)
	require.NoError(t, err)
	assert.Empty(t, got, "not player 1's turn")

	_, err = d.AvailableActions(7)
	assert.True(t, check.IsIntegrity(err))
	assert.ErrorIs(t, err, &check.IntegrityError{Reason: check.InvalidPlayerID})
}

func TestExecuteActionErrors(t *testing.T) {
	d := newDispatcher(t, 2)

	err := d.ExecuteAction(0, "teleport", registry.Args{})
	assert.ErrorIs(t, err, ErrUnknownAction)

	err = d.ExecuteAction(0, "buildSettlement", registry.Args{})
	assert.ErrorIs(t, err, ErrMissingArgument)

	err = d.ExecuteAction(0, "buildSettlement", mustArgs(t, "corners=1,2"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = d.ExecuteAction(0, "buildSettlement", mustArgs(t, "corners=99"))
	assert.True(t, check.IsIntegrity(err))
	assert.ErrorIs(t, err, &check.IntegrityError{Reason: check.InvalidCornerID})

	err = d.ExecuteAction(1, "pass", registry.Args{})
	assert.True(t, check.IsLegality(err))
	assert.ErrorIs(t, err, check.ErrorFor(check.OtherPlayersTurn))

	err = d.ExecuteAction(0, "rollDice", registry.Args{})
	assert.ErrorIs(t, err, check.ErrorFor(check.NotAllowedInThisTurn))
}

func TestNormalTurnThroughDispatcher(t *testing.T) {
	d := newDispatcher(t, 3)
	placeAll(t, d)

	turn, ok := d.Game().Turn().(*engine.NormalTurn)
	require.True(t, ok)
	require.Equal(t, engine.PlayerID(0), turn.Player().ID())

	got, err := d.AvailableActions(0)
	require.NoError(t, err)
	assert.Equal(t, []engine.Action{engine.RollDice}, got)

	require.NoError(t, d.ExecuteAction(0, "ROLLDICE", registry.Args{}))
	_, rolled := turn.Dice()
	assert.True(t, rolled)
	assert.ErrorIs(t, d.ExecuteAction(0, "rollDice", registry.Args{}), check.ErrorFor(check.DiceAlreadyRolled))

	got, err = d.AvailableActions(0)
	require.NoError(t, err)
	assert.NotContains(t, got, engine.RollDice)

	assert.ErrorIs(t, d.ExecuteAction(0, "playDevelopmentCard", registry.Args{}), ErrMissingArgument)
	assert.ErrorIs(t, d.ExecuteAction(0, "moveThief", registry.Args{}), ErrMissingArgument)
	assert.ErrorIs(t, d.ExecuteAction(0, "trade", mustArgs(t, "resource=ore")), ErrMissingArgument)
	assert.ErrorIs(t, d.ExecuteAction(0, "exchange", registry.Args{}), ErrMissingArgument)

	err = d.ExecuteAction(0, "playDevelopmentCard", mustArgs(t, "card=99"))
	assert.ErrorIs(t, err, &check.IntegrityError{Reason: check.InvalidDevelopmentCardID})
}

func TestParseArgs(t *testing.T) {
	ore, grain := resource.Ore, resource.Grain
	one, two := 1, 2

	tests := []struct {
		name   string
		tokens []string
		want   registry.Args
	}{
		{name: "empty", want: registry.Args{}},
		{name: "corners", tokens: []string{"corners=3, 4"}, want: registry.Args{Corners: []int{3, 4}}},
		{name: "ids", tokens: []string{"tile=1", "player=2", "card=1"}, want: registry.Args{Tile: &one, Player: &two, Card: &one}},
		{
			name:   "bundles",
			tokens: []string{"resources=brick:1,lumber:2", "taken=ore=1"},
			want: registry.Args{
				Resources: resource.FromMap(map[resource.Kind]int{resource.Brick: 1, resource.Lumber: 2}),
				Taken:     resource.Of(resource.Ore, 1),
			},
		},
		{name: "kinds", tokens: []string{"resource=Ore", "given=wheat"}, want: registry.Args{Resource: &ore, Given: &grain}},
		{name: "choices", tokens: []string{"choices=ore,grain"}, want: registry.Args{Choices: []resource.Kind{ore, grain}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	for _, tokens := range [][]string{
		{"corners"},
		{"corners=a"},
		{"tile=x"},
		{"resource=gold"},
		{"resources=brick:-1"},
		{"colour=red"},
	} {
		_, err := ParseArgs(tokens)
		assert.ErrorIs(t, err, ErrInvalidArgument, "%v", tokens)
	}
}
