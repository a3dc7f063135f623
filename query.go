package restcall

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"

	"github.com/gorilla/schema"
)

var schemaEncoder = schema.NewEncoder()

// stringify coerces a loosely-typed bag value into its query/path text form.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

// applyQuery merges a query source into q. Per key: an array value appends
// one entry per element in order, a nil value deletes any existing entry,
// and anything else sets a single coerced value. Map keys are walked in
// sorted order so repeated plans of the same source are stable; struct
// sources are encoded with gorilla/schema and merged through the same rules.
func applyQuery(q url.Values, source any) error {
	if source == nil {
		return nil
	}
	switch src := source.(type) {
	case Params:
		return applyQueryMap(q, src)
	case map[string]any:
		return applyQueryMap(q, src)
	case url.Values:
		for _, k := range sortedKeys(src) {
			applyQueryValue(q, k, src[k])
		}
		return nil
	}

	rv := reflect.ValueOf(source)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Errorf(CodeUnknownPayload, "unsupported query source type %T", source)
	}
	encoded := url.Values{}
	if err := schemaEncoder.Encode(rv.Interface(), encoded); err != nil {
		return Errorf(CodeUnknownPayload, "failed to encode query source: %v", err)
	}
	for _, k := range sortedKeys(encoded) {
		applyQueryValue(q, k, encoded[k])
	}
	return nil
}

func applyQueryMap(q url.Values, src map[string]any) error {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := src[k]
		if v == nil {
			q.Del(k)
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			q.Del(k)
			for i := 0; i < rv.Len(); i++ {
				q.Add(k, stringify(rv.Index(i).Interface()))
			}
			continue
		}
		q.Set(k, stringify(v))
	}
	return nil
}

func applyQueryValue(q url.Values, key string, vals []string) {
	if len(vals) > 1 {
		q.Del(key)
		for _, v := range vals {
			q.Add(key, v)
		}
		return
	}
	if len(vals) == 1 {
		q.Set(key, vals[0])
	}
}

func sortedKeys(v url.Values) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
