package check

// Reason is a machine-readable code explaining why an action is illegal.
// The set is closed: every code the engine can produce is declared here.
type Reason string

const (
	// Turn sequencing.
	TurnFinished         Reason = "TURN_FINISHED"
	OtherPlayersTurn     Reason = "OTHER_PLAYERS_TURN"
	NotAllowedInThisTurn Reason = "NOT_ALLOWED_IN_THIS_TURN"

	// Dice and thief sequence.
	DiceNotRolled           Reason = "DICE_NOT_ROLLED"
	DiceAlreadyRolled       Reason = "DICE_ALREADY_ROLLED"
	DiceRollIsNot7          Reason = "DICE_ROLL_IS_NOT_7"
	ResourcesNotDiscarded   Reason = "RESOURCES_NOT_DISCARDED"
	ResourcesNotDiscardable Reason = "RESOURCES_NOT_DISCARDABLE"
	ResourcesNotAvailable   Reason = "RESOURCES_NOT_AVAILABLE"
	ThiefNotMoved           Reason = "THIEF_NOT_MOVED"
	ThiefAlreadyMoved       Reason = "THIEF_ALREADY_MOVED"
	ThiefSameTile           Reason = "THIEF_SAME_TILE"
	StealTargetRequired     Reason = "STEAL_TARGET_REQUIRED"
	CannotStealFromSelf     Reason = "CANNOT_STEAL_FROM_SELF"
	StealTargetNotAdjacent  Reason = "STEAL_TARGET_NOT_ADJACENT"
	StealTargetNoResources  Reason = "STEAL_TARGET_WITHOUT_RESOURCES"

	// Board placement.
	CornersNotAdjacent             Reason = "CORNERS_NOT_ADJACENT"
	EdgeOccupied                   Reason = "EDGE_OCCUPIED"
	DisconnectedEdge               Reason = "DISCONNECTED_EDGE"
	CornerOccupied                 Reason = "CORNER_OCCUPIED"
	CornerAdjacentToOccupiedCorner Reason = "CORNER_ADJACENT_TO_OCCUPIED_CORNER"
	DisconnectedCorner             Reason = "DISCONNECTED_CORNER"
	CornerWithoutSettlement        Reason = "CORNER_WITHOUT_SETTLEMENT"

	// Initial placement.
	SettlementAlreadyBuilt       Reason = "SETTLEMENT_ALREADY_BUILT"
	SettlementNotBuilt           Reason = "SETTLEMENT_NOT_BUILT"
	RoadAlreadyBuilt             Reason = "ROAD_ALREADY_BUILT"
	RoadNotBuilt                 Reason = "ROAD_NOT_BUILT"
	RoadAndSettlementNotAdjacent Reason = "ROAD_AND_SETTLEMENT_NOT_ADJACENT"

	// Resources and trading.
	NotEnoughResources                Reason = "NOT_ENOUGH_RESOURCES"
	ExchangeWithSelf                  Reason = "SAME_ORIGIN_AND_DESTINY_PLAYER"
	NoResourcesGiven                  Reason = "NO_RESOURCES_GIVEN"
	NoResourcesTaken                  Reason = "NO_RESOURCES_TAKEN"
	CounterpartyNotEnoughResources    Reason = "DESTINY_PLAYER_NOT_ENOUGH_RESOURCES"
	SameResourceTraded                Reason = "SAME_RESOURCE_TRADED"
	InvalidResource                   Reason = "INVALID_RESOURCE"
	EmptyDeck                         Reason = "EMPTY_DECK"
	CardNotOwnedByPlayer              Reason = "CARD_NOT_OWNED_BY_PLAYER"
	CardAlreadyPlayed                 Reason = "CARD_ALREADY_PLAYED"
	CardDrawnThisTurn                 Reason = "CARD_DRAWN_THIS_TURN"
	CardAlreadyPlayedThisTurn         Reason = "DEVELOPMENT_CARD_ALREADY_PLAYED_THIS_TURN"
	NoPlayableCard                    Reason = "NO_PLAYABLE_DEVELOPMENT_CARD"
	VictoryPointCardIsNotPlayable     Reason = "VICTORY_POINT_CARD_IS_NOT_PLAYABLE"
	UndefinedDevelopmentCardArguments Reason = "UNDEFINED_DEVELOPMENT_CARD_ARGUMENTS"

	// Integrity. These travel on IntegrityError, never on Error.
	InvalidTileID                    Reason = "INVALID_TILE_ID"
	InvalidCornerID                  Reason = "INVALID_CORNER_ID"
	InvalidPlayerID                  Reason = "INVALID_PLAYER_ID"
	InvalidDevelopmentCardID         Reason = "INVALID_DEVELOPMENT_CARD_ID"
	CornerDoesntBelongToRoad         Reason = "CORNER_DOESNT_BELONG_TO_ROAD"
	AchievementTokenNotOwnedByPlayer Reason = "ACHIEVEMENT_TOKEN_NOT_OWNED_BY_PLAYER"
	NoDesertTile                     Reason = "NO_DESERT_TILE"
	PreconditionViolated             Reason = "PRECONDITION_VIOLATED"
)

var allReasons = []Reason{
	TurnFinished, OtherPlayersTurn, NotAllowedInThisTurn,
	DiceNotRolled, DiceAlreadyRolled, DiceRollIsNot7,
	ResourcesNotDiscarded, ResourcesNotDiscardable, ResourcesNotAvailable,
	ThiefNotMoved, ThiefAlreadyMoved, ThiefSameTile,
	StealTargetRequired, CannotStealFromSelf, StealTargetNotAdjacent, StealTargetNoResources,
	CornersNotAdjacent, EdgeOccupied, DisconnectedEdge,
	CornerOccupied, CornerAdjacentToOccupiedCorner, DisconnectedCorner, CornerWithoutSettlement,
	SettlementAlreadyBuilt, SettlementNotBuilt, RoadAlreadyBuilt, RoadNotBuilt, RoadAndSettlementNotAdjacent,
	NotEnoughResources, ExchangeWithSelf, NoResourcesGiven, NoResourcesTaken,
	CounterpartyNotEnoughResources, SameResourceTraded, InvalidResource, EmptyDeck,
	CardNotOwnedByPlayer, CardAlreadyPlayed, CardDrawnThisTurn, CardAlreadyPlayedThisTurn,
	NoPlayableCard, VictoryPointCardIsNotPlayable, UndefinedDevelopmentCardArguments,
	InvalidTileID, InvalidCornerID, InvalidPlayerID, InvalidDevelopmentCardID,
	CornerDoesntBelongToRoad, AchievementTokenNotOwnedByPlayer, NoDesertTile, PreconditionViolated,
}

var knownReasons = func() map[Reason]bool {
	m := make(map[Reason]bool, len(allReasons))
	for _, r := range allReasons {
		m[r] = true
	}
	return m
}()

// Reasons returns every declared reason in declaration order.
func Reasons() []Reason {
	out := make([]Reason, len(allReasons))
	copy(out, allReasons)
	return out
}

// Valid reports whether r is one of the declared reasons.
func (r Reason) Valid() bool {
	return knownReasons[r]
}

// String returns the wire form of the reason.
func (r Reason) String() string {
	return string(r)
}
