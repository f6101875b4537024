package world

import (
	"bytes"
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-organism/model"
)

const (
	worldKey       = "world"
	generationsKey = "generations"
)

// ErrBadPayload is returned when a world payload cannot be decoded.
var ErrBadPayload = errors.New("bad world payload")

// header is the typed part of the payload; everything else passes through
type header struct {
	Size            int `mapstructure:"size"`
	GenerationCount int `mapstructure:"generationCount"`
}

// Payload is a starting world handed out by the remote service
type Payload struct {
	World           *model.Grid
	Size            int
	GenerationCount int // inclusive of generation 0
	Meta            map[string]any
}

// DecodePayload parses a world payload. Every key except "world" is kept in
// Meta so it can be echoed back on submission.
func DecodePayload(data []byte) (*Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrapf(ErrBadPayload, "[DecodePayload] %v", err)
	}

	var h header
	if err := mapstructure.Decode(raw, &h); err != nil {
		return nil, errors.Wrapf(ErrBadPayload, "[DecodePayload] %v", err)
	}

	rawWorld, ok := raw[worldKey]
	if !ok {
		return nil, errors.Wrap(ErrBadPayload, "[DecodePayload] missing world")
	}
	worldJSON, err := json.Marshal(rawWorld)
	if err != nil {
		return nil, errors.Wrapf(ErrBadPayload, "[DecodePayload] %v", err)
	}
	var grid model.Grid
	if err := json.Unmarshal(worldJSON, &grid); err != nil {
		return nil, errors.Wrap(err, "[DecodePayload] world")
	}

	if _, hasSize := raw["size"]; hasSize && (grid.GetHeight() != h.Size || grid.GetWidth() != h.Size) {
		return nil, errors.Wrapf(model.ErrInvalidGrid, "[DecodePayload] world is %dx%d, size says %d",
			grid.GetWidth(), grid.GetHeight(), h.Size)
	}

	delete(raw, worldKey)
	return &Payload{
		World:           &grid,
		Size:            h.Size,
		GenerationCount: h.GenerationCount,
		Meta:            raw,
	}, nil
}

// MarshalJSON encodes the payload with its passthrough metadata
func (p *Payload) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Meta)+3)
	for k, v := range p.Meta {
		out[k] = v
	}
	out[worldKey] = p.World
	out["size"] = p.Size
	out["generationCount"] = p.GenerationCount
	return json.Marshal(out)
}

// Submission is the body posted back: the payload metadata minus the world, plus generations
type Submission struct {
	Meta        map[string]any
	Generations model.Sequence
}

// NewSubmission pairs a payload's metadata with its computed generations
func NewSubmission(p *Payload, seq model.Sequence) *Submission {
	meta := make(map[string]any, len(p.Meta))
	for k, v := range p.Meta {
		if k == worldKey {
			continue
		}
		meta[k] = v
	}
	return &Submission{Meta: meta, Generations: seq}
}

// MarshalJSON flattens metadata and generations into one object
func (s *Submission) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Meta)+1)
	for k, v := range s.Meta {
		out[k] = v
	}
	out[generationsKey] = s.Generations
	return json.Marshal(out)
}

// UnmarshalJSON splits generations from the remaining metadata
func (s *Submission) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(ErrBadPayload, "[Submission.UnmarshalJSON] %v", err)
	}
	rawGens, ok := raw[generationsKey]
	if !ok {
		return errors.Wrap(ErrBadPayload, "[Submission.UnmarshalJSON] missing generations")
	}
	var seq model.Sequence
	if err := json.Unmarshal(rawGens, &seq); err != nil {
		return errors.Wrap(err, "[Submission.UnmarshalJSON] generations")
	}

	delete(raw, generationsKey)
	meta := make(map[string]any, len(raw))
	for k, v := range raw {
		var value any
		dec := json.NewDecoder(bytes.NewReader(v))
		dec.UseNumber()
		if err := dec.Decode(&value); err != nil {
			return errors.Wrapf(ErrBadPayload, "[Submission.UnmarshalJSON] %s: %v", k, err)
		}
		meta[k] = value
	}

	s.Meta = meta
	s.Generations = seq
	return nil
}
