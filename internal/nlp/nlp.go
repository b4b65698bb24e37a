// ABOUTME: Boundary types and interfaces for the external NLP collaborators
// ABOUTME: Spell correction and named-entity extraction run out of process

package nlp

import (
	"context"
)

// Label classifies an extracted entity.
type Label string

const (
	LabelObject   Label = "OBJECT"
	LabelLocation Label = "LOCATION"
)

// Entity is a labeled text span extracted from a message. Entities arrive in
// whatever order the extraction collaborator emits them; that order is
// preserved all the way through command building because it decides which
// location becomes location1 vs location2.
type Entity struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
}

// Corrector fixes spelling in a raw operator message.
type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

// Extractor returns the entities found in a corrected message. The result is
// a pass-through of the collaborator's output: no filtering, no dedup, no
// reordering. A failed extraction is fatal for the current request.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]Entity, error)
}
