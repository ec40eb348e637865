package core

import "encoding/json"

// JSONCodec is the reference encoding of the collection: a JSON array of notes.
type JSONCodec struct {
	// Indent pretty prints the stored value.
	Indent bool
}

func (JSONCodec) Name() string { return "json" }

func (c JSONCodec) Marshal(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	if c.Indent {
		return json.MarshalIndent(notes, "", "  ")
	}
	return json.Marshal(notes)
}

func (JSONCodec) Unmarshal(data []byte) ([]Note, error) {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
