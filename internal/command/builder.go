// ABOUTME: Builds dispatchable move-item commands from extracted entities
// ABOUTME: Applies the fallback policy for missing/unresolvable entities

package command

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/warebot/picker-gateway/internal/nlp"
)

// ErrCatalogUnavailable is returned when a request needs product resolution
// but the catalog failed to load at startup. Unlike a resolution miss, this
// is a real error and surfaces to the caller.
var ErrCatalogUnavailable = errors.New("product catalog unavailable")

// Payload is one move instruction inside a dispatched command. Locations are
// omitted from the wire format when absent.
type Payload struct {
	ProductID string `json:"product_id"`
	Location1 string `json:"location1,omitempty"`
	Location2 string `json:"location2,omitempty"`
}

// Command is the unit published to connected robots. Exactly one is built
// per successfully resolved request.
type Command struct {
	// ID identifies the dispatch for logging; it is not part of the wire
	// payload.
	ID      string    `json:"-"`
	Command string    `json:"command"`
	Payload []Payload `json:"payload"`
}

// Result is the outcome of building a command from one request's entities.
// Response always holds the text to show the operator; Cmd is nil on every
// fallback path and non-nil only when a product was resolved.
type Result struct {
	Response string
	Cmd      *Command
}

// Fallback responses. Texts are fixed; tests and operators rely on them.
const (
	respNoEntities = "I couldn't detect any useful info. Please try rephrasing the command."
	respNoObject   = "I didn't catch what item you're referring to. Could you name it again?"

	unspecified = "[unspecified]"
)

// Resolver maps an object name to a product ID. A miss is ok=false, never
// an error.
type Resolver interface {
	Resolve(term string) (productID string, ok bool)
}

// Builder turns entity sequences into commands against a fixed catalog.
type Builder struct {
	resolver Resolver
}

// NewBuilder creates a builder backed by the given resolver. A nil resolver
// is allowed: it models a catalog that failed to load, and any request that
// reaches the resolution step then fails with ErrCatalogUnavailable.
func NewBuilder(resolver Resolver) *Builder {
	return &Builder{resolver: resolver}
}

// Build evaluates the fallback policy over one request's entities, in order,
// each branch short-circuiting the rest:
//
//  1. no entities at all -> fallback, no command
//  2. no OBJECT entity -> fallback, no command
//  3. resolver miss on the first OBJECT -> fallback naming the object
//  4. otherwise -> one "start" command with up to two locations
//
// The first OBJECT entity wins; all LOCATION entities are collected in their
// emission order and the first two become location1/location2. Extras are
// discarded.
//
// The only error condition is a missing catalog (ErrCatalogUnavailable);
// every other outcome, including a resolution miss, is a Result.
func (b *Builder) Build(entities []nlp.Entity) (Result, error) {
	if len(entities) == 0 {
		return Result{Response: respNoEntities}, nil
	}

	var object string
	var hasObject bool
	var locations []string
	for _, e := range entities {
		switch e.Label {
		case nlp.LabelObject:
			if !hasObject {
				object = e.Text
				hasObject = true
			}
		case nlp.LabelLocation:
			locations = append(locations, e.Text)
		}
	}

	if !hasObject {
		return Result{Response: respNoObject}, nil
	}

	if b.resolver == nil {
		return Result{}, ErrCatalogUnavailable
	}

	productID, ok := b.resolver.Resolve(object)
	if !ok {
		return Result{
			Response: fmt.Sprintf("I understood you meant '%s', but couldn't match it to any known item.", object),
		}, nil
	}

	payload := Payload{ProductID: productID}
	loc1, loc2 := unspecified, unspecified
	if len(locations) >= 1 {
		payload.Location1 = locations[0]
		loc1 = locations[0]
	}
	if len(locations) >= 2 {
		payload.Location2 = locations[1]
		loc2 = locations[1]
	}

	return Result{
		Response: fmt.Sprintf("Sent command to move '%s' from %s to %s", object, loc1, loc2),
		Cmd: &Command{
			ID:      uuid.New().String(),
			Command: "start",
			Payload: []Payload{payload},
		},
	}, nil
}
