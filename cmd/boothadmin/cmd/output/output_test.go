package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boothadmin/internal/domain/collection"
	"boothadmin/internal/domain/record"
)

func tools() []record.Record {
	return []record.Record{
		{ID: "1", Values: map[string]any{"item_name": "Kamera", "category": "Foto", "stock": 2.0, "condition": "baik"}},
		{ID: "2", Values: map[string]any{"item_name": "Tripod, besar", "stock": 0.0}},
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"simple", "TABLE", "json", "csv"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatSimple, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}

func TestRecords(t *testing.T) {
	schema := record.KindTools.Schema()

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Records(&buf, schema, tools(), FormatCSV))
		assert.Equal(t,
			"id,item_name,category,stock,condition\n"+
				"1,Kamera,Foto,2,baik\n"+
				"2,\"Tripod, besar\",,0,\n",
			buf.String())
	})

	t.Run("simple", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Records(&buf, schema, tools(), FormatSimple))
		assert.Contains(t, buf.String(), "[1] Название: Kamera | Категория: Foto | Остаток: 2 | Состояние: baik\n")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Records(&buf, schema, tools(), FormatTable))
		assert.Contains(t, buf.String(), "Название")
		assert.Contains(t, buf.String(), "Tripod, besar")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Records(&buf, schema, tools(), FormatJSON))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0]["id"])
		assert.Equal(t, "Kamera", got[0]["item_name"])
	})
}

func TestView(t *testing.T) {
	schema := record.KindTools.Schema()

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		v := collection.View{State: collection.ViewEmpty, Message: "Оборудование: записей пока нет"}
		require.NoError(t, View(&buf, schema, v, FormatSimple))
		assert.Equal(t, "Оборудование: записей пока нет\n", buf.String())
	})

	t.Run("json keeps records array", func(t *testing.T) {
		var buf bytes.Buffer
		v := collection.View{State: collection.ViewNotFound, CurrentPage: 1, TotalPages: 1, Total: 2}
		require.NoError(t, View(&buf, schema, v, FormatJSON))
		assert.Contains(t, buf.String(), `"records": []`)
		assert.Contains(t, buf.String(), `"state": "not_found"`)
	})
}

func TestFooter(t *testing.T) {
	v := collection.View{
		CurrentPage: 5,
		TotalPages:  9,
		PageRange:   collection.PageRange(5, 9),
		HasPrev:     true,
		HasNext:     true,
		Total:       50,
	}
	assert.Equal(t, "« 1 … 4 [5] 6 … 9 »  Страница 5 из 9, всего 50", Footer(v))

	v = collection.View{CurrentPage: 1, TotalPages: 1, PageRange: []int{1}, Query: "kam", Filtered: 1, Total: 2}
	assert.Equal(t, "[1]  Страница 1 из 1, найдено 1 из 2", Footer(v))
}
