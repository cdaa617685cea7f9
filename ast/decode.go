package ast

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
)

// ErrDecode is returned for documents that do not describe a tree.
var ErrDecode = errors.New("invalid tree document")

// Document is a decoded tree document: optional template-defined custom
// forms plus the program's top-level nodes.
//
// The encoding is YAML (JSON is accepted as a subset):
//
//	forms:
//	  square: [ "*", "~", "~" ]
//	program:
//	  - [var, x, 3]
//	  - [console.log, [square, x], {str: "done"}]
//
// Sequences are call forms, plain strings are symbols, numbers and null map
// to their atoms and booleans pass through. Single-key mappings select the
// remaining literals: {str: text}, {kw: name}, {re: pattern}, {raw: text},
// {vec: [...]} and {map: [[k, v], ...]} (or {map: {k: v}}). A document that
// is a bare sequence is a program without forms.
type Document struct {
	Forms   []FormDef
	Program []Node
}

// FormDef is a template-defined custom form declared by a document.
type FormDef struct {
	Name     string
	Template Node
}

// Decode parses a tree document.
func Decode(data []byte) (*Document, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	doc := &Document{}
	switch top := raw.(type) {
	case nil:
		return doc, nil
	case []any:
		prog, err := decodeSeq(top)
		if err != nil {
			return nil, err
		}
		doc.Program = prog
		return doc, nil
	case yaml.MapSlice:
		for _, item := range top {
			key, _ := item.Key.(string)
			switch key {
			case "forms":
				defs, ok := item.Value.(yaml.MapSlice)
				if !ok && item.Value != nil {
					return nil, fmt.Errorf("%w: forms must be a mapping of name to template", ErrDecode)
				}
				for _, def := range defs {
					name, ok := def.Key.(string)
					if !ok || name == "" {
						return nil, fmt.Errorf("%w: form name %v is not a string", ErrDecode, def.Key)
					}
					tmpl, err := DecodeValue(def.Value)
					if err != nil {
						return nil, fmt.Errorf("form %s: %w", name, err)
					}
					doc.Forms = append(doc.Forms, FormDef{Name: name, Template: tmpl})
				}
			case "program":
				seq, ok := item.Value.([]any)
				if !ok && item.Value != nil {
					return nil, fmt.Errorf("%w: program must be a sequence of forms", ErrDecode)
				}
				prog, err := decodeSeq(seq)
				if err != nil {
					return nil, err
				}
				doc.Program = prog
			default:
				return nil, fmt.Errorf("%w: unknown top-level key %v", ErrDecode, item.Key)
			}
		}
		return doc, nil
	}
	return nil, fmt.Errorf("%w: top level must be a sequence or a mapping, got %T", ErrDecode, raw)
}

// DecodeValue converts one decoded YAML value into a Node.
func DecodeValue(v any) (Node, error) {
	switch v := v.(type) {
	case nil:
		return Null{}, nil
	case string:
		return Symbol(v), nil
	case bool:
		return Wrap(v), nil
	case int:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: integer %d out of range", ErrDecode, v)
		}
		return Int(int64(v)), nil
	case float64:
		return Float(v), nil
	case []any:
		items, err := decodeSeq(v)
		if err != nil {
			return nil, err
		}
		return &List{Items: items}, nil
	case yaml.MapSlice:
		return decodeLiteral(v)
	}
	return Wrap(v), nil
}

func decodeSeq(seq []any) ([]Node, error) {
	out := make([]Node, len(seq))
	for i, v := range seq {
		n, err := DecodeValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func decodeLiteral(m yaml.MapSlice) (Node, error) {
	if len(m) != 1 {
		return nil, fmt.Errorf("%w: literal mapping must have exactly one key, got %d", ErrDecode, len(m))
	}
	key, _ := m[0].Key.(string)
	val := m[0].Value
	switch key {
	case "str":
		return Str(scalarText(val)), nil
	case "raw":
		return Wrap(scalarText(val)), nil
	case "kw":
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: kw expects a name, got %v", ErrDecode, val)
		}
		return Keyword(s), nil
	case "re":
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: re expects a pattern, got %v", ErrDecode, val)
		}
		return Regex(s), nil
	case "vec":
		seq, ok := val.([]any)
		if !ok && val != nil {
			return nil, fmt.Errorf("%w: vec expects a sequence", ErrDecode)
		}
		items, err := decodeSeq(seq)
		if err != nil {
			return nil, err
		}
		return &Vector{Items: items}, nil
	case "map":
		return decodeMap(val)
	}
	return nil, fmt.Errorf("%w: unknown literal key %v", ErrDecode, m[0].Key)
}

func decodeMap(val any) (Node, error) {
	out := &Map{}
	switch entries := val.(type) {
	case nil:
		return out, nil
	case yaml.MapSlice:
		for _, e := range entries {
			k, err := DecodeValue(e.Key)
			if err != nil {
				return nil, err
			}
			v, err := DecodeValue(e.Value)
			if err != nil {
				return nil, err
			}
			out.Pairs = append(out.Pairs, Pair{Key: k, Value: v})
		}
		return out, nil
	case []any:
		for _, e := range entries {
			kv, ok := e.([]any)
			if !ok || len(kv) != 2 {
				return nil, fmt.Errorf("%w: map entries must be [key, value] pairs", ErrDecode)
			}
			k, err := DecodeValue(kv[0])
			if err != nil {
				return nil, err
			}
			v, err := DecodeValue(kv[1])
			if err != nil {
				return nil, err
			}
			out.Pairs = append(out.Pairs, Pair{Key: k, Value: v})
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: map expects a mapping or a sequence of pairs", ErrDecode)
}

func scalarText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	return fmt.Sprint(v)
}
