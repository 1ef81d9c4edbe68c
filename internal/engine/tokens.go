package engine

// Achievement token thresholds and worth.
const (
	TokenVictoryPoints = 2
	MinKnights         = 3
	MinRouteLength     = 5
)

// TokenKind enumerates achievement tokens.
type TokenKind uint8

const (
	LargestArmy TokenKind = iota
	LongestRoute
)

func (k TokenKind) String() string {
	switch k {
	case LargestArmy:
		return "LargestArmy"
	case LongestRoute:
		return "LongestRoute"
	default:
		return "Unknown"
	}
}

// Token is a floating bonus held by at most one player.
type Token struct {
	id     TokenID
	kind   TokenKind
	holder *Player
}

// ID returns the token id.
func (t *Token) ID() TokenID { return t.id }

// Kind returns the token type.
func (t *Token) Kind() TokenKind { return t.kind }

// Holder returns the current holder, if any.
func (t *Token) Holder() (PlayerID, bool) {
	if t.holder == nil {
		return 0, false
	}
	return t.holder.id, true
}

func (t *Token) minimum() int {
	if t.kind == LargestArmy {
		return MinKnights
	}
	return MinRouteLength
}

// Score returns p's count for this token: knights played or longest route.
func (t *Token) Score(b *Board, p *Player) int {
	if t.kind == LargestArmy {
		return p.knights
	}
	return b.LongestRoute(p.id)
}

// CanBeAwardedTo reports whether p reaches the minimum and strictly beats
// the current holder. A holder keeps the token on a tie.
func (t *Token) CanBeAwardedTo(b *Board, p *Player) bool {
	score := t.Score(b, p)
	if score < t.minimum() {
		return false
	}
	if t.holder == nil {
		return true
	}
	if t.holder == p {
		return false
	}
	return score > t.Score(b, t.holder)
}

func (t *Token) awardTo(p *Player) error {
	if t.holder != nil {
		if err := t.holder.removeToken(t); err != nil {
			return err
		}
	}
	t.holder = p
	p.tokens = append(p.tokens, t)
	return nil
}
