// Package options holds the user-adjustable analysis parameters.
// Options have a lifecycle independent of the document session: a
// "back to engine" reset clears the session but keeps the user's
// tone/structure/focus preferences.
package options

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Tones, in the order the sidebar cycles through them.
var Tones = []string{"formal", "concise", "executive", "risk-focused"}

// Structures, in cycle order.
var Structures = []string{"structured", "bulleted"}

// Focuses, in cycle order.
var Focuses = []string{"full", "legal", "finance", "compliance", "operations"}

// Options parameterize an analyze request. They are read, not consumed,
// at the moment the request is issued.
type Options struct {
	Tone      string `json:"tone" validate:"oneof=formal concise executive risk-focused"`
	Structure string `json:"structure" validate:"oneof=structured bulleted"`
	Focus     string `json:"focus" validate:"oneof=full legal finance compliance operations"`
}

// Defaults returns the default analysis options.
func Defaults() Options {
	return Options{Tone: "formal", Structure: "structured", Focus: "full"}
}

var validate = validator.New()

// Validate checks that every field is a member of its enumerated set.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid analysis options: %w", err)
	}
	return nil
}

// CycleTone advances Tone to the next value in Tones, wrapping around.
func (o *Options) CycleTone() { o.Tone = next(Tones, o.Tone) }

// CycleStructure advances Structure to the next value in Structures.
func (o *Options) CycleStructure() { o.Structure = next(Structures, o.Structure) }

// CycleFocus advances Focus to the next value in Focuses.
func (o *Options) CycleFocus() { o.Focus = next(Focuses, o.Focus) }

func next(set []string, current string) string {
	for i, v := range set {
		if v == current {
			return set[(i+1)%len(set)]
		}
	}
	// Unknown value: snap back to the first member.
	return set[0]
}
