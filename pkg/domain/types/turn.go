package types

import "github.com/google/uuid"

// TurnID identifies one conversational turn (user query + assistant
// response) for log correlation.
type TurnID string

func NewTurnID() TurnID {
	return TurnID(uuid.New().String())
}

func (x TurnID) String() string {
	return string(x)
}
