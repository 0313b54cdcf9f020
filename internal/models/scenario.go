package models

import (
	"encoding/json"
	"time"
)

// Scenario is a named, saved parameter set owned by a user
type Scenario struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	Params    Params    `json:"params"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScenarioListItem represents a scenario in a list (metadata only)
type ScenarioListItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateScenarioRequest represents the request body for saving a scenario.
// Params omitted from the body keep their default values.
type CreateScenarioRequest struct {
	Name    string  `json:"name" binding:"required"`
	OwnerID int64   `json:"owner_id" binding:"required"`
	Params  *Params `json:"params"`
}

// UpdateScenarioRequest represents the request body for updating a scenario.
// Params, when present, are overlaid on the stored set.
type UpdateScenarioRequest struct {
	Name   string          `json:"name"`
	Params json.RawMessage `json:"params" swaggertype:"object"`
}
