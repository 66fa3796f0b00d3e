package collection

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"boothadmin/internal/domain/record"
)

// ViewState - что показывает страница
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewError
	ViewUnauthenticated
	ViewEmpty
	ViewNotFound
	ViewReady
)

func (s ViewState) String() string {
	switch s {
	case ViewError:
		return "error"
	case ViewUnauthenticated:
		return "unauthenticated"
	case ViewEmpty:
		return "empty"
	case ViewNotFound:
		return "not_found"
	case ViewReady:
		return "ready"
	default:
		return "loading"
	}
}

// View - снимок страницы для отрисовки.
type View struct {
	State       ViewState
	Message     string
	Err         error
	Query       string
	Records     []record.Record
	Total       int
	Filtered    int
	CurrentPage int
	TotalPages  int
	PageRange   []int
	HasPrev     bool
	HasNext     bool
}

// Page связывает хранилище, поиск, пагинацию и мутации одной страницы
// списка. Page не предназначена для конкурентного использования: все
// вызовы идут из одного обработчика событий.
type Page struct {
	Schema record.Schema
	Store  *Store
	Bridge *Bridge
	Pager  *Pager

	query string
}

// Option настраивает Page
type Option func(*pageOptions)

type pageOptions struct {
	pageSize int
	notifier Notifier
	log      *slog.Logger
}

func WithPageSize(size int) Option {
	return func(o *pageOptions) { o.pageSize = size }
}

func WithNotifier(n Notifier) Option {
	return func(o *pageOptions) { o.notifier = n }
}

func WithLogger(log *slog.Logger) Option {
	return func(o *pageOptions) { o.log = log }
}

func NewPage(remote Remote, kind record.Kind, opts ...Option) *Page {
	o := pageOptions{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}

	schema := kind.Schema()
	store := NewStore(remote, schema, o.notifier, o.log)
	return &Page{
		Schema: schema,
		Store:  store,
		Bridge: NewBridge(store, remote, o.notifier, o.log),
		Pager:  NewPager(o.pageSize),
	}
}

// Mount загружает коллекцию и открывает первую страницу.
func (p *Page) Mount(ctx context.Context) error {
	p.Pager.Paginate(1, 0)
	return p.Store.Load(ctx)
}

// Retry - повторная загрузка после ошибки.
func (p *Page) Retry(ctx context.Context) error {
	err := p.Store.Load(ctx)
	p.Pager.Clamp(len(p.Filtered()))
	return err
}

// SetQuery меняет поисковый запрос и возвращает на первую страницу.
func (p *Page) SetQuery(q string) {
	p.query = q
	p.Pager.Paginate(1, len(p.Filtered()))
}

func (p *Page) Query() string {
	return p.query
}

// Filtered возвращает записи, подходящие под текущий запрос.
func (p *Page) Filtered() []record.Record {
	return Filter(p.Store.Records(), p.Schema, p.query)
}

// Visible возвращает записи текущей страницы.
func (p *Page) Visible() []record.Record {
	return Window(p.Filtered(), p.Pager.Current(), p.Pager.Size())
}

func (p *Page) Paginate(n int) int {
	return p.Pager.Paginate(n, len(p.Filtered()))
}

func (p *Page) Next() int {
	return p.Paginate(p.Pager.Current() + 1)
}

func (p *Page) Prev() int {
	return p.Paginate(p.Pager.Current() - 1)
}

// Create добавляет запись и открывает последнюю страницу, где она видна.
func (p *Page) Create(ctx context.Context, values map[string]any) (record.Record, error) {
	rec, err := p.Bridge.Create(ctx, values)
	if err != nil {
		return rec, err
	}
	p.Pager.Last(len(p.Filtered()))
	return rec, nil
}

// Update изменяет запись; страница остается прежней, если она еще существует.
func (p *Page) Update(ctx context.Context, id string, values map[string]any) (record.Record, error) {
	rec, err := p.Bridge.Update(ctx, id, values)
	if err != nil {
		return rec, err
	}
	p.Pager.Clamp(len(p.Filtered()))
	return rec, nil
}

// ArmDelete и CancelDelete - первый шаг и отмена двухшагового удаления.
func (p *Page) ArmDelete(id string) error {
	return p.Bridge.ArmDelete(id)
}

func (p *Page) CancelDelete(id string) {
	p.Bridge.CancelDelete(id)
}

// Delete удаляет подтвержденную запись. Если текущая страница опустела,
// номер страницы уменьшается до новой последней.
func (p *Page) Delete(ctx context.Context, id string) error {
	if err := p.Bridge.Delete(ctx, id); err != nil {
		return err
	}
	p.Pager.Clamp(len(p.Filtered()))
	return nil
}

// Status возвращает состояние загрузки коллекции.
func (p *Page) Status() Status {
	status, _ := p.Store.State()
	return status
}

// EmptyMessage различает пустую коллекцию и пустой результат поиска.
// Для непустой выборки возвращает "".
func (p *Page) EmptyMessage() string {
	switch {
	case p.Store.Len() == 0:
		return fmt.Sprintf("%s: записей пока нет", p.Schema.Kind.DisplayName())
	case len(p.Filtered()) == 0:
		return fmt.Sprintf("По запросу «%s» ничего не найдено", p.query)
	}
	return ""
}

// View собирает снимок страницы.
func (p *Page) View() View {
	status, err := p.Store.State()
	filtered := p.Filtered()

	v := View{
		Query:       p.query,
		Total:       p.Store.Len(),
		Filtered:    len(filtered),
		CurrentPage: p.Pager.Current(),
		TotalPages:  p.Pager.TotalPages(len(filtered)),
		HasPrev:     p.Pager.HasPrev(),
		HasNext:     p.Pager.HasNext(len(filtered)),
		Err:         err,
	}
	v.PageRange = PageRange(v.CurrentPage, v.TotalPages)

	switch status {
	case StatusIdle, StatusLoading:
		v.State = ViewLoading
		v.Message = "Загрузка..."
	case StatusUnauthenticated:
		v.State = ViewUnauthenticated
		v.Message = Describe(err)
	case StatusFailed:
		v.State = ViewError
		v.Message = Describe(err)
	default:
		switch {
		case v.Total == 0:
			v.State = ViewEmpty
			v.Message = p.EmptyMessage()
		case v.Filtered == 0:
			v.State = ViewNotFound
			v.Message = p.EmptyMessage()
		default:
			v.State = ViewReady
			v.Records = Window(filtered, v.CurrentPage, p.Pager.Size())
		}
	}
	return v
}
