package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewMessage wraps a payload under an action name.
func NewMessage(action string, payload interface{}) Message {
	return Message{Action: action, Payload: payload}
}

// NewErrorMessage builds an encoded "error" message for a single client.
func NewErrorMessage(text string) []byte {
	data, _ := json.Marshal(NewMessage("error", map[string]string{"message": text}))
	return data
}
