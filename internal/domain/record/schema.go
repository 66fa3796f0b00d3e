package record

// DateLayout - формат дат в полях записей.
const DateLayout = "2006-01-02"

// FieldType - тип значения поля записи
type FieldType int

const (
	String FieldType = iota
	Number
)

// Field описывает одно доменное поле записи.
type Field struct {
	Name  string
	Label string
	Type  FieldType
	// Searchable - поле участвует в текстовом поиске.
	Searchable bool
	// RawMatch - поиск по полю идет без приведения запроса к нижнему регистру.
	RawMatch bool
	// Rules - правила валидации формы (синтаксис validator/v10).
	Rules string
}

// Endpoints - пути REST API для коллекции. Пустой путь означает, что
// операция на сервере не поддерживается.
type Endpoints struct {
	List   string
	Get    string // с плейсхолдером {id}
	Create string
	Update string // с плейсхолдером {id}
	Delete string // с плейсхолдером {id}
}

// Schema описывает коллекцию: поля, эндпоинты и допустимые обертки ответа.
type Schema struct {
	Kind      Kind
	Fields    []Field
	Endpoints Endpoints
	// Wrappers - ключи объекта-обертки, под которыми API может вернуть массив.
	Wrappers []string
	// Singular - ключ, под которым API может вернуть одну запись.
	Singular string
}

// Field возвращает описание поля по имени.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Searchable возвращает поля, участвующие в поиске.
func (s Schema) Searchable() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Searchable {
			out = append(out, f)
		}
	}
	return out
}

// Supports проверяет, поддерживает ли сервер операцию с коллекцией.
func (s Schema) Supports(op string) bool {
	switch op {
	case "list":
		return s.Endpoints.List != ""
	case "get":
		return s.Endpoints.Get != ""
	case "create":
		return s.Endpoints.Create != ""
	case "update":
		return s.Endpoints.Update != ""
	case "delete":
		return s.Endpoints.Delete != ""
	}
	return false
}

var schemas = map[Kind]Schema{
	KindUsers: {
		Kind: KindUsers,
		Fields: []Field{
			{Name: "name", Label: "Имя", Type: String, Searchable: true, Rules: "required,max=100"},
			{Name: "email", Label: "Email", Type: String, Searchable: true, Rules: "omitempty,email"},
			{Name: "phone", Label: "Телефон", Type: String, Searchable: true, RawMatch: true, Rules: "required,max=20"},
			{Name: "address", Label: "Адрес", Type: String, Searchable: true, Rules: "max=255"},
			{Name: "role", Label: "Роль", Type: String, Searchable: true, Rules: "required,oneof=admin user"},
		},
		Endpoints: Endpoints{
			List:   "/data1",
			Create: "/data1/add",
			Update: "/data1/edit/{id}",
			Delete: "/data1/delete/{id}",
		},
		Wrappers: []string{"data", "users", "data1"},
		Singular: "user",
	},
	KindTools: {
		Kind: KindTools,
		Fields: []Field{
			{Name: "item_name", Label: "Название", Type: String, Searchable: true, Rules: "required,max=100"},
			{Name: "category", Label: "Категория", Type: String, Searchable: true, Rules: "max=50"},
			{Name: "stock", Label: "Остаток", Type: Number, Rules: "gte=0"},
			{Name: "condition", Label: "Состояние", Type: String, Searchable: true, Rules: "max=50"},
		},
		Endpoints: Endpoints{
			List:   "/data2",
			Get:    "/data2/{id}",
			Create: "/data2/add",
			Update: "/data2/edit/{id}",
		},
		Wrappers: []string{"data", "tools", "items", "data2"},
		Singular: "tool",
	},
	KindLogs: {
		Kind: KindLogs,
		Fields: []Field{
			{Name: "user_name", Label: "Сотрудник", Type: String, Searchable: true, Rules: "required,max=100"},
			{Name: "item_name", Label: "Оборудование", Type: String, Searchable: true, Rules: "required,max=100"},
			{Name: "quantity", Label: "Кол-во", Type: Number, Rules: "gt=0"},
			{Name: "borrow_date", Label: "Выдано", Type: String, Rules: "omitempty,datetime=2006-01-02"},
			{Name: "return_date", Label: "Возвращено", Type: String, Rules: "omitempty,datetime=2006-01-02"},
			{Name: "status", Label: "Статус", Type: String, Searchable: true, Rules: "omitempty,oneof=borrowed returned dipinjam dikembalikan"},
		},
		Endpoints: Endpoints{
			List:   "/data3",
			Create: "/data3/add",
			Update: "/data3/{id}",
		},
		Wrappers: []string{"data", "logs", "borrow_logs", "data3"},
		Singular: "log",
	},
	KindEvents: {
		Kind: KindEvents,
		Fields: []Field{
			{Name: "title", Label: "Название", Type: String, Searchable: true, Rules: "required,max=150"},
			{Name: "client", Label: "Клиент", Type: String, Searchable: true, Rules: "max=100"},
			{Name: "location", Label: "Место", Type: String, Searchable: true, Rules: "max=255"},
			{Name: "date", Label: "Дата", Type: String, Rules: "required,datetime=2006-01-02"},
			{Name: "status", Label: "Статус", Type: String, Searchable: true, Rules: "omitempty,max=30"},
		},
		Endpoints: Endpoints{
			List:   "/events",
			Get:    "/events/{id}",
			Create: "/events/add",
			Update: "/events/edit/{id}",
			Delete: "/events/delete/{id}",
		},
		Wrappers: []string{"data", "events"},
		Singular: "event",
	},
}
