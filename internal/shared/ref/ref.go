package ref

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Kind string

const (
	KindID   Kind = "id"
	KindName Kind = "name"
)

// Ref points at another record either by primary key or by its
// human-entered name. The caller states which one; nothing is inferred from
// the shape of the value.
type Ref struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

func ByID(id string) *Ref     { return &Ref{Kind: KindID, Value: strings.TrimSpace(id)} }
func ByName(name string) *Ref { return &Ref{Kind: KindName, Value: strings.TrimSpace(name)} }

// UnmarshalJSON accepts either a bare string, meaning a name, or an explicit
// {"kind":"id"|"name","value":"..."} object.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*r = Ref{Kind: KindName, Value: strings.TrimSpace(name)}
		return nil
	}

	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	switch p.Kind {
	case KindID, KindName:
	default:
		return fmt.Errorf("ref kind must be %q or %q", KindID, KindName)
	}
	p.Value = strings.TrimSpace(p.Value)
	*r = Ref(p)
	return nil
}

func (r *Ref) IsZero() bool {
	return r == nil || r.Value == ""
}

// UUID parses the value of an id ref.
func (r *Ref) UUID() (uuid.UUID, error) {
	if r == nil || r.Kind != KindID {
		return uuid.Nil, fmt.Errorf("not an id ref")
	}
	return uuid.Parse(r.Value)
}

// Label renders the ref the way error messages quote it.
func (r *Ref) Label() string {
	if r == nil {
		return ""
	}
	return r.Value
}

// Pick resolves the pair of request fields a resource exposes for one
// relation: an explicit id field takes precedence over the name/ref field.
func Pick(id string, named *Ref) *Ref {
	if strings.TrimSpace(id) != "" {
		return ByID(id)
	}
	if named.IsZero() {
		return nil
	}
	return named
}

// FromQuery builds a filter ref from the explicit pair of query params a list
// endpoint exposes, e.g. departmentId=<uuid> or department=<name>. The id
// param wins when both are set.
func FromQuery(id, name string) (*Ref, error) {
	if id = strings.TrimSpace(id); id != "" {
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid id %q", id)
		}
		return ByID(id), nil
	}
	return Pick("", ByName(name)), nil
}
