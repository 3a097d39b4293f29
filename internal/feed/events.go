package feed

import "time"

// Welcome is the first line a subscriber receives.
type Welcome struct {
	Type      string    `json:"type"` // always "welcome"
	Transport string    `json:"transport"`
	Clients   int       `json:"clients"`
	At        time.Time `json:"at"`
}

func newWelcome(transport string, clients int) Welcome {
	return Welcome{Type: "welcome", Transport: transport, Clients: clients, At: time.Now().UTC()}
}
