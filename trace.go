package settings

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Trace captures provenance for a single resolution: every candidate scope
// the resolver considered and why it was or was not selected.
type Trace struct {
	ID         string      `json:"id"`
	Key        string      `json:"key"`
	Registered bool        `json:"registered"`
	Result     Value       `json:"result"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Candidate details how a specific scope contributed to a traced resolution.
type Candidate struct {
	Scope    Scope `json:"scope"`
	Value    any   `json:"value,omitempty"`
	Present  bool  `json:"present"`
	Allowed  bool  `json:"allowed"`
	Selected bool  `json:"selected"`
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated
// via ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

func newTrace(key string, result Value) Trace {
	return Trace{
		ID:     uuid.NewString(),
		Key:    key,
		Result: result,
	}
}

func finishTrace(trace Trace, key string, result Value) Trace {
	trace.ID = uuid.NewString()
	trace.Key = key
	trace.Registered = true
	trace.Result = result
	return trace
}
