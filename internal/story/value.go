package story

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind is the shape of a Value.
type Kind int

const (
	KindMissing Kind = iota
	KindNull
	KindScalar
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	}
	return "unknown"
}

// mergeTag is the resolved tag of the YAML "<<" merge key.
const mergeTag = "!!merge"

// maxAliasDepth bounds alias chains. yaml.v3 already rejects alias cycles,
// this only guards hand-built trees.
const maxAliasDepth = 64

// Value is a read-only view of one node of a Document.
// The zero Value is missing; every lookup on a missing value is missing too.
type Value struct {
	node *yaml.Node
}

// resolve follows aliases to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for i := 0; n != nil && n.Kind == yaml.AliasNode; i++ {
		if i >= maxAliasDepth {
			return nil
		}
		n = n.Alias
	}
	if n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return resolve(n.Content[0])
	}
	return n
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	n := resolve(v.node)
	if n == nil {
		return KindMissing
	}
	switch n.Kind {
	case yaml.MappingNode:
		return KindMapping
	case yaml.SequenceNode:
		return KindSequence
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return KindNull
		}
		return KindScalar
	}
	return KindMissing
}

// Exists reports whether the value is present (null counts as present).
func (v Value) Exists() bool {
	return v.Kind() != KindMissing
}

// Get returns the value stored under key, or a missing Value if v is not a
// mapping or has no such key. Explicit keys take precedence over keys pulled
// in through "<<" merges; a repeated key resolves to its last occurrence.
func (v Value) Get(key string) Value {
	n := resolve(v.node)
	if n == nil || n.Kind != yaml.MappingNode {
		return Value{}
	}
	return Value{node: lookup(n, key, 0)}
}

func lookup(m *yaml.Node, key string, depth int) *yaml.Node {
	if depth > maxAliasDepth {
		return nil
	}

	var found *yaml.Node
	var merges []*yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, val := resolve(m.Content[i]), m.Content[i+1]
		if k == nil || k.Kind != yaml.ScalarNode {
			continue
		}
		if k.ShortTag() == mergeTag {
			merges = append(merges, val)
			continue
		}
		if k.Value == key {
			found = val
		}
	}
	if found != nil {
		return found
	}

	for _, src := range merges {
		src = resolve(src)
		if src == nil {
			continue
		}
		switch src.Kind {
		case yaml.MappingNode:
			if hit := lookup(src, key, depth+1); hit != nil {
				return hit
			}
		case yaml.SequenceNode:
			for _, item := range src.Content {
				item = resolve(item)
				if item == nil || item.Kind != yaml.MappingNode {
					continue
				}
				if hit := lookup(item, key, depth+1); hit != nil {
					return hit
				}
			}
		}
	}
	return nil
}

// Mapping returns the value under key if it is a mapping, otherwise an empty mapping.
func (v Value) Mapping(key string) Value {
	child := v.Get(key)
	if child.Kind() != KindMapping {
		return Value{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	return child
}

// Sequence returns the items under key if it is a sequence, otherwise nil.
func (v Value) Sequence(key string) []Value {
	return v.Get(key).Items()
}

// Items returns the elements of a sequence value, or nil for any other shape.
func (v Value) Items() []Value {
	n := resolve(v.node)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	items := make([]Value, len(n.Content))
	for i, c := range n.Content {
		items[i] = Value{node: c}
	}
	return items
}

// StringOr returns the string form of the value under key, or def when the
// key is absent. A key that is present with a null value is not absent.
func (v Value) StringOr(key, def string) string {
	child := v.Get(key)
	if !child.Exists() {
		return def
	}
	return child.String()
}

// String returns the natural string form of the value:
// integers in base 10, booleans as true/false, null and missing as "",
// other scalars as written, and collections in YAML flow style.
func (v Value) String() string {
	n := resolve(v.node)
	if n == nil {
		return ""
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarString(n)
	case yaml.MappingNode, yaml.SequenceNode:
		return flowString(n)
	}
	return ""
}

func scalarString(n *yaml.Node) string {
	switch n.ShortTag() {
	case "!!null":
		return ""
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return strconv.FormatBool(b)
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return strconv.FormatInt(i, 10)
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return strconv.FormatUint(u, 10)
		}
	}
	return n.Value
}

func flowString(n *yaml.Node) string {
	c := *n
	c.Style = yaml.FlowStyle
	c.Anchor = ""
	c.HeadComment, c.LineComment, c.FootComment = "", "", ""
	out, err := yaml.Marshal(&c)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
