package collection

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"boothadmin/internal/domain/record"
)

// Filter возвращает записи, у которых хотя бы одно поисковое поле схемы
// содержит запрос как подстроку без учета регистра. Пустой запрос
// возвращает копию всей коллекции. Входной срез не изменяется.
//
// Поля с RawMatch (телефон) сравниваются с исходным запросом без приведения
// регистра.
func Filter(records []record.Record, schema record.Schema, query string) []record.Record {
	out := make([]record.Record, 0, len(records))
	if query == "" {
		return append(out, records...)
	}

	lower := cases.Lower(language.Und)
	q := lower.String(query)
	fields := schema.Searchable()

	for _, rec := range records {
		if matches(rec, fields, lower, query, q) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec record.Record, fields []record.Field, lower cases.Caser, raw, q string) bool {
	for _, f := range fields {
		v := rec.String(f.Name)
		if f.RawMatch {
			if strings.Contains(v, raw) {
				return true
			}
			continue
		}
		if strings.Contains(lower.String(v), q) {
			return true
		}
	}
	return false
}
