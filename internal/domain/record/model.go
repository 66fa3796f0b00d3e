package record

import (
	"encoding/json"
	"maps"
	"strconv"
)

// Record - одна сущность коллекции (пользователь, оборудование, запись
// журнала, мероприятие). Доменные поля хранятся в Values уже
// нормализованными по схеме: string для String, float64 для Number.
type Record struct {
	ID     string         `json:"id"`
	Values map[string]any `json:"values"`
	// Provisional - id сгенерирован на клиенте и сервер о нем не знает.
	Provisional bool `json:"provisional,omitempty"`
}

// String возвращает строковое значение поля или "".
func (r Record) String(name string) string {
	switch v := r.Values[name].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// Number возвращает числовое значение поля или 0.
func (r Record) Number(name string) float64 {
	switch v := r.Values[name].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return 0
}

// Clone возвращает копию записи с собственной картой значений.
func (r Record) Clone() Record {
	return Record{
		ID:          r.ID,
		Values:      maps.Clone(r.Values),
		Provisional: r.Provisional,
	}
}

// MarshalJSON сериализует запись в плоский объект, как его отдает API.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		out[k] = v
	}
	out["id"] = r.ID
	return json.Marshal(out)
}

// Payload возвращает тело запроса create/update: только поля схемы.
func Payload(schema Schema, values map[string]any) map[string]any {
	out := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		out[f.Name] = coerce(f, values[f.Name])
	}
	return out
}
