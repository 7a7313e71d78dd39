package game

import "fmt"

// Player identifies one of the two sides of a game.
type Player int

const (
	PlayerOne Player = iota + 1
	PlayerTwo
)

// Other returns the opponent of p.
func (p Player) Other() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "ONE"
	case PlayerTwo:
		return "TWO"
	}
	return fmt.Sprintf("Player(%d)", int(p))
}

func (p Player) MarshalText() ([]byte, error) {
	if p != PlayerOne && p != PlayerTwo {
		return nil, fmt.Errorf("cannot marshal unknown player %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ONE":
		*p = PlayerOne
	case "TWO":
		*p = PlayerTwo
	default:
		return fmt.Errorf("unknown player %q", text)
	}
	return nil
}

// Result is the outcome of a game position.
type Result int

const (
	InProgress Result = iota
	PlayerOneWins
	PlayerTwoWins
	Draw
)

// Won returns the result in which p is the winner.
func Won(p Player) Result {
	if p == PlayerOne {
		return PlayerOneWins
	}
	return PlayerTwoWins
}

// Winner reports the winning player, if any.
func (r Result) Winner() (Player, bool) {
	switch r {
	case PlayerOneWins:
		return PlayerOne, true
	case PlayerTwoWins:
		return PlayerTwo, true
	}
	return 0, false
}

// Over reports whether the game has finished.
func (r Result) Over() bool {
	return r != InProgress
}

var resultNames = map[Result]string{
	InProgress:    "INPROGRESS",
	PlayerOneWins: "PLAYER1",
	PlayerTwoWins: "PLAYER2",
	Draw:          "DRAW",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

func (r Result) MarshalText() ([]byte, error) {
	name, ok := resultNames[r]
	if !ok {
		return nil, fmt.Errorf("cannot marshal unknown result %d", int(r))
	}
	return []byte(name), nil
}

func (r *Result) UnmarshalText(text []byte) error {
	for result, name := range resultNames {
		if name == string(text) {
			*r = result
			return nil
		}
	}
	return fmt.Errorf("unknown result %q", text)
}
