package gameplay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/resonance/engine/internal/core/vmath"
)

type sceneDoc struct {
	Name      string      `json:"name"`
	IsPlaying bool        `json:"is_playing"`
	Gravity   *vmath.Vec3 `json:"gravity,omitempty"`
	Objects   []objectDoc `json:"objects"`
}

type objectDoc struct {
	Name       string            `json:"name"`
	GUID       uuid.UUID         `json:"guid"`
	Transform  Transform         `json:"transform"`
	Components []json.RawMessage `json:"components"`
}

type componentHeader struct {
	Type    string `json:"type"`
	Enabled *bool  `json:"enabled"`
}

func encodeComponent(c Component) (json.RawMessage, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.TypeName(), err)
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.TypeName(), err)
	}
	fields["type"], _ = json.Marshal(c.TypeName())
	fields["enabled"], _ = json.Marshal(c.base().Enabled())
	return json.Marshal(fields)
}

// MarshalJSON writes the scene document: name, play state and every object
// with its transform and components, in insertion order.
func (s *Scene) MarshalJSON() ([]byte, error) {
	g := s.physics.Gravity
	doc := sceneDoc{Name: s.Name, IsPlaying: s.playing, Gravity: &g}
	for _, obj := range s.Objects() {
		od := objectDoc{
			Name:       obj.name,
			GUID:       obj.guid,
			Transform:  obj.Transform,
			Components: make([]json.RawMessage, 0, len(obj.components)),
		}
		for _, c := range obj.components {
			raw, err := encodeComponent(c)
			if err != nil {
				return nil, fmt.Errorf("object %s: %w", obj.name, err)
			}
			od.Components = append(od.Components, raw)
		}
		doc.Objects = append(doc.Objects, od)
	}
	return json.Marshal(doc)
}

// LoadScene builds a scene from a document. The scene is not woken.
func LoadScene(data []byte, reg *Registry) (*Scene, error) {
	var doc sceneDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	s := NewScene(doc.Name)
	s.playing = doc.IsPlaying
	if doc.Gravity != nil {
		s.physics.Gravity = *doc.Gravity
	}
	for i, od := range doc.Objects {
		g, err := s.createWithGUID(od.Name, od.GUID)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		g.Transform = od.Transform
		if g.Transform.Scale.IsZero() {
			g.Transform.Scale = vmath.One
		}
		for j, raw := range od.Components {
			var h componentHeader
			if err := json.Unmarshal(raw, &h); err != nil {
				return nil, fmt.Errorf("object %s component %d: %w", od.Name, j, err)
			}
			c, err := reg.Decode(h.Type, raw)
			if err != nil {
				return nil, fmt.Errorf("object %s: %w", od.Name, err)
			}
			if h.Enabled != nil {
				c.base().SetEnabled(*h.Enabled)
			}
			if err := g.Add(c); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// Load reads and builds the scene document at path.
func Load(path string, reg *Registry) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := LoadScene(data, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Snapshot serializes the scene and keeps the result as its backup, for
// restoring the pre-play state in the editor.
func (s *Scene) Snapshot() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	s.backup = data
	return data, nil
}

// Backup is the last Snapshot, or nil.
func (s *Scene) Backup() []byte { return s.backup }

// Save writes the scene document to path.
func (s *Scene) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
