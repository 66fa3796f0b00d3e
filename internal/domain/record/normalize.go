package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// now подменяется в тестах.
var now = time.Now

// idKeys - ключи, под которыми API может вернуть идентификатор.
var idKeys = []string{"id", "_id", "insertId", "insert_id"}

// Normalize разбирает ответ списка коллекции. Допустимы голый массив,
// объект с массивом под ключом data или под ключом ресурса. Любая другая
// форма - ErrShapeMismatch. Повторяющийся id - ErrDuplicateID, частичный
// результат не возвращается.
func Normalize(schema Schema, body []byte) ([]Record, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	items, err := unwrapList(schema, raw)
	if err != nil {
		return nil, err
	}

	ts := now().UnixMilli()
	records := make([]Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T, not an object", ErrShapeMismatch, i, item)
		}
		rec := normalizeRecord(schema, obj)
		if rec.ID == "" {
			rec.ID = fmt.Sprintf("generated-%d-%d", i, ts)
			rec.Provisional = true
		}
		records = append(records, rec)
	}

	if err := checkUnique(records); err != nil {
		return nil, err
	}

	return records, nil
}

// NormalizeOne разбирает ответ с одной записью: голый объект, объект под
// ключом data или под ключом ресурса в единственном числе.
func NormalizeOne(schema Schema, body []byte) (Record, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	obj, ok := unwrapOne(schema, raw)
	if !ok {
		return Record{}, fmt.Errorf("%w: expected an object, got %T", ErrShapeMismatch, raw)
	}

	return normalizeRecord(schema, obj), nil
}

// ExtractID достает id, назначенный сервером, из ответа на создание.
// Пустое тело или ответ без id - ok == false.
func ExtractID(schema Schema, body []byte) (string, bool) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", false
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", false
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return "", false
	}
	if id := idOf(obj); id != "" {
		return id, true
	}

	if inner, ok := unwrapOne(schema, raw); ok {
		if id := idOf(inner); id != "" {
			return id, true
		}
	}

	return "", false
}

func unwrapList(schema Schema, raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range schema.Wrappers {
			if list, ok := v[key].([]any); ok {
				return list, nil
			}
		}
		return nil, fmt.Errorf("%w: object without a known array key (%s)",
			ErrShapeMismatch, strings.Join(schema.Wrappers, ", "))
	case nil:
		return nil, fmt.Errorf("%w: null body", ErrShapeMismatch)
	default:
		return nil, fmt.Errorf("%w: %T", ErrShapeMismatch, raw)
	}
}

func unwrapOne(schema Schema, raw any) (map[string]any, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range []string{"data", schema.Singular} {
		if key == "" {
			continue
		}
		if inner, ok := obj[key].(map[string]any); ok {
			return inner, true
		}
	}
	return obj, true
}

func normalizeRecord(schema Schema, obj map[string]any) Record {
	rec := Record{
		ID:     idOf(obj),
		Values: make(map[string]any, len(schema.Fields)),
	}
	for _, f := range schema.Fields {
		rec.Values[f.Name] = coerce(f, obj[f.Name])
	}
	return rec
}

func idOf(obj map[string]any) string {
	for _, key := range idKeys {
		switch v := obj[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// coerce приводит значение к типу поля, подставляя "" или 0 по умолчанию.
func coerce(f Field, v any) any {
	switch f.Type {
	case Number:
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err == nil {
				return parsed
			}
		}
		return float64(0)
	default:
		switch s := v.(type) {
		case nil:
			return ""
		case string:
			return s
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		case bool:
			return strconv.FormatBool(s)
		}
		return fmt.Sprint(v)
	}
}

func checkUnique(records []Record) error {
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		if first, ok := seen[rec.ID]; ok {
			return &DuplicateIDError{ID: rec.ID, First: first, Second: i}
		}
		seen[rec.ID] = i
	}
	return nil
}
