package resource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/app/client"
	"boothadmin/internal/domain/collection"
	"boothadmin/internal/domain/record"
)

const browseHelp = `Команды:
  show                      показать текущую страницу
  search <текст>            поиск (возвращает на первую страницу)
  clear                     сбросить поиск
  next, prev, page <n>      навигация по страницам
  add key=value ...         добавить запись
  edit <id> key=value ...   изменить запись
  delete <id>               начать удаление (затем confirm или cancel)
  confirm <id>              подтвердить удаление
  cancel <id>               отменить удаление
  retry                     повторить загрузку
  quit                      выход
Значения с пробелами берутся в кавычки: name="Dewi Sari"`

var errUnknownCommand = errors.New("неизвестная команда, help - список команд")

func newBrowseCmd(kind record.Kind) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Интерактивный просмотр с поиском и пагинацией",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			f, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}

			// Ошибка загрузки не завершает сессию: страница покажет ее, а
			// команда retry повторит запрос.
			page, _ := app.Mount(cmd.Context(), kind)

			b := NewBrowser(page, cmd.OutOrStdout(), f)
			return b.Run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "формат вывода (simple, table, json, csv)")
	return cmd
}

// Browser - интерактивная страница коллекции в терминале.
type Browser struct {
	page   *collection.Page
	out    io.Writer
	format output.Format
}

func NewBrowser(page *collection.Page, out io.Writer, format output.Format) *Browser {
	return &Browser{page: page, out: out, format: format}
}

// Run читает команды построчно до quit, конца ввода или отмены контекста.
func (b *Browser) Run(ctx context.Context, in io.Reader) error {
	b.render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, b.prompt())
		if !scanner.Scan() {
			fmt.Fprintln(b.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		quit, err := b.Exec(ctx, scanner.Text())
		if err != nil {
			// Ошибки загрузки и мутаций уже показаны уведомлением.
			var actionErr *collection.ActionError
			if !errors.As(err, &actionErr) {
				fmt.Fprintln(b.out, "Ошибка:", err)
			}
		}
		if quit {
			return nil
		}
	}
}

func (b *Browser) prompt() string {
	v := b.page.View()
	return fmt.Sprintf("%s [%d/%d]> ", CommandName(b.page.Schema.Kind), v.CurrentPage, v.TotalPages)
}

func (b *Browser) render() {
	if err := output.View(b.out, b.page.Schema, b.page.View(), b.format); err != nil {
		fmt.Fprintln(b.out, "Ошибка вывода:", err)
	}
}

// Exec выполняет одну команду. quit == true завершает сессию.
func (b *Browser) Exec(ctx context.Context, line string) (quit bool, err error) {
	args, err := SplitArgs(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}

	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(b.out, browseHelp)
		return false, nil
	case "show", "ls":
	case "search", "s":
		b.page.SetQuery(strings.Join(rest, " "))
	case "clear":
		b.page.SetQuery("")
	case "next", "n":
		b.page.Next()
	case "prev", "p":
		b.page.Prev()
	case "page":
		if len(rest) != 1 {
			return false, errors.New("использование: page <n>")
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return false, fmt.Errorf("неверный номер страницы %q", rest[0])
		}
		b.page.Paginate(n)
	case "retry", "r":
		if err := b.page.Retry(ctx); err != nil {
			b.render()
			return false, err
		}
	case "add":
		values, err := ParseValues(b.page.Schema, rest)
		if err != nil {
			return false, err
		}
		if _, err := b.page.Create(ctx, values); err != nil {
			return false, err
		}
	case "edit":
		if len(rest) < 2 {
			return false, errors.New("использование: edit <id> key=value ...")
		}
		values, err := ParseValues(b.page.Schema, rest[1:])
		if err != nil {
			return false, err
		}
		if _, err := b.page.Update(ctx, rest[0], values); err != nil {
			return false, err
		}
	case "delete", "rm":
		if len(rest) != 1 {
			return false, errors.New("использование: delete <id>")
		}
		if err := b.page.ArmDelete(rest[0]); err != nil {
			return false, errors.New(collection.Describe(err))
		}
		fmt.Fprintf(b.out, "Подтвердите удаление: confirm %s (или cancel %s)\n", rest[0], rest[0])
		return false, nil
	case "confirm":
		if len(rest) != 1 {
			return false, errors.New("использование: confirm <id>")
		}
		if err := b.page.Delete(ctx, rest[0]); err != nil {
			if errors.Is(err, collection.ErrNotConfirmed) || errors.Is(err, collection.ErrInFlight) {
				return false, errors.New(collection.Describe(err))
			}
			return false, err
		}
	case "cancel":
		if len(rest) != 1 {
			return false, errors.New("использование: cancel <id>")
		}
		b.page.CancelDelete(rest[0])
		fmt.Fprintln(b.out, "Удаление отменено")
		return false, nil
	default:
		return false, errUnknownCommand
	}

	b.render()
	return false, nil
}
