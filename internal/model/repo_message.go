package model

import "time"

// RepoMessage is the immutable repository snapshot handed between the
// crawler, the persistence gateways and the Kafka topic.
type RepoMessage struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	FullName  string    `json:"full_name"`
	StarCount int       `json:"star_count"`
	Url       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
