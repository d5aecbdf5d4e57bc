// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package remote_bench

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// decodePayload parses a JSON document typed into a step input into the value
// emitted to the bench. An empty string emits no data.
func decodePayload(src string) (any, error) {
	if src == "" {
		return nil, nil
	}
	ty, err := ctyjson.ImpliedType([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	val, err := ctyjson.Unmarshal([]byte(src), ty)
	if err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	return ctyValueToInterface(val)
}

// ctyValueToInterface converts a cty.Value to a Go interface{}.
func ctyValueToInterface(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			elem, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = elem
		}
		return out, nil
	case ty.IsTupleType() || ty.IsListType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			elem, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty.Type for conversion: %s", ty.FriendlyName())
}

// interfaceToCtyValue converts a decoded socket.io argument to a cty.Value.
func interfaceToCtyValue(data any) (cty.Value, error) {
	if data == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	switch v := data.(type) {
	case string:
		return cty.StringVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	case int:
		return cty.NumberIntVal(int64(v)), nil
	case bool:
		return cty.BoolVal(v), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(v))
		for key, elem := range v {
			ctyVal, err := interfaceToCtyValue(elem)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[key] = ctyVal
		}
		return cty.ObjectVal(attrs), nil
	case []any:
		elems := make([]cty.Value, 0, len(v))
		for _, elem := range v {
			ctyVal, err := interfaceToCtyValue(elem)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, ctyVal)
		}
		return cty.TupleVal(elems), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported type for conversion to cty.Value: %T", v)
	}
}

// judgeReply decides whether a bench reply reports success. A reply object
// with `"ok": false` or a non-empty `"error"` string is a failure; anything
// else, including no payload, is a success. The reply is also rendered as JSON
// for the step message.
func judgeReply(reply any) (bool, string, error) {
	val, err := interfaceToCtyValue(reply)
	if err != nil {
		return false, "", err
	}
	if val.IsNull() {
		return true, "null", nil
	}

	rendered, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return false, "", err
	}

	if val.Type().IsObjectType() {
		if val.Type().HasAttribute("ok") {
			ok := val.GetAttr("ok")
			if !ok.IsNull() && ok.Type() == cty.Bool && ok.False() {
				return false, string(rendered), nil
			}
		}
		if val.Type().HasAttribute("error") {
			e := val.GetAttr("error")
			if !e.IsNull() && e.Type() == cty.String && e.AsString() != "" {
				return false, string(rendered), nil
			}
		}
	}
	return true, string(rendered), nil
}
