package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Value is a loosely typed listing field. The site does not keep its types
// stable, so the raw JSON is kept and rendered on demand.
type Value struct {
	raw json.RawMessage
}

func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], b...)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Present() {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Present reports whether the field was set to something other than null.
func (v Value) Present() bool {
	return len(v.raw) > 0 && !bytes.Equal(v.raw, []byte("null"))
}

func (v Value) String() string {
	if !v.Present() {
		return ""
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, v.raw); err != nil {
		return string(v.raw)
	}
	return buf.String()
}

type Showing struct {
	Time        Value `json:"time"`
	IsSoldOut   Value `json:"isSoldOut"`
	BookingLink Value `json:"bookingLink"`
}

type Show struct {
	Title          Value     `json:"title"`
	ReleaseDate    Value     `json:"releaseDate"`
	Duration       Value     `json:"duration"`
	Rating         Value     `json:"rating"`
	Director       Value     `json:"director"`
	Actors         Value     `json:"actors"`
	Times          []Showing `json:"times"`
	ImagePortrait  Value     `json:"image-portrait"`
	ImageLandscape Value     `json:"image-landscape"`
}

// ActorNames returns the cast. A bare string is treated as a single name.
func (s Show) ActorNames() []string {
	if !s.Actors.Present() {
		return nil
	}
	var strict []string
	if err := json.Unmarshal(s.Actors.raw, &strict); err == nil {
		return strict
	}
	var loose []Value
	if err := json.Unmarshal(s.Actors.raw, &loose); err == nil {
		names := make([]string, 0, len(loose))
		for _, n := range loose {
			names = append(names, n.String())
		}
		return names
	}
	return []string{strings.TrimSpace(s.Actors.String())}
}

// Listing is every show playing on one date, keyed as the site keys it.
type Listing struct {
	Date  string `json:"date"`
	Shows []Show `json:"shows"`
}
