// Package mcputils binds loosely typed MCP tool arguments to Go structs.
package mcputils

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ArgumentGetter is an interface for getting arguments from a request
type ArgumentGetter interface {
	GetArguments() map[string]interface{}
}

var rawMessageType = reflect.TypeOf(json.RawMessage(nil))

// CoerceBindArguments binds MCP request arguments to target using the json
// struct tags. Clients differ in how they send values, so strings are
// converted where the field wants something else:
//   - json.RawMessage fields take a string verbatim, or any other value re-encoded as JSON
//   - slice, map and struct fields take JSON text ("[...]", "{...}") or comma-separated lists
//   - numeric and boolean fields take their string spelling
func CoerceBindArguments[T any](request ArgumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			rawMessageHook,
			jsonTextHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(request.GetArguments())
}

func rawMessageHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != rawMessageType || data == nil || from == rawMessageType {
		return data, nil
	}
	if s, ok := data.(string); ok {
		return json.RawMessage(s), nil
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(encoded), nil
}

// jsonTextHook decodes a string holding a JSON array or object when the
// target is a composite type. Anything that does not parse is passed on.
func jsonTextHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Slice, reflect.Map, reflect.Struct:
	default:
		return data, nil
	}

	text := strings.TrimSpace(data.(string))
	if !isJSONComposite(text) {
		return data, nil
	}

	if to.Kind() == reflect.Slice {
		ptr := reflect.New(to)
		if err := json.Unmarshal([]byte(text), ptr.Interface()); err != nil {
			return data, nil
		}
		return ptr.Elem().Interface(), nil
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return data, nil
	}
	return decoded, nil
}

func isJSONComposite(s string) bool {
	return (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"))
}
