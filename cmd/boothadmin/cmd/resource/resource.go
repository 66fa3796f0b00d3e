// Package resource строит команды CLI для коллекций: list, get, add, edit,
// delete и интерактивный browse.
package resource

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/domain/record"
)

// CommandName - имя команды CLI для коллекции.
func CommandName(kind record.Kind) string {
	switch kind {
	case record.KindUsers:
		return "user"
	case record.KindTools:
		return "tool"
	case record.KindLogs:
		return "log"
	case record.KindEvents:
		return "event"
	}
	return kind.String()
}

// NewCmd создает родительскую команду коллекции со всеми подкомандами,
// которые поддерживает API.
func NewCmd(kind record.Kind) *cobra.Command {
	schema := kind.Schema()

	cmd := &cobra.Command{
		Use:     CommandName(kind),
		Aliases: []string{kind.String()},
		Short:   kind.DisplayName(),
		Long:    fmt.Sprintf("%s: просмотр, поиск, добавление и изменение записей.", kind.DisplayName()),
	}

	cmd.AddCommand(newListCmd(kind), newAddCmd(kind), newEditCmd(kind), newBrowseCmd(kind))
	if schema.Supports("get") {
		cmd.AddCommand(newGetCmd(kind))
	}
	if schema.Supports("delete") {
		cmd.AddCommand(newDeleteCmd(kind))
	}
	return cmd
}

func addFormatFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "format", "f", "simple", "формат вывода (simple, table, json, csv)")
}

// resolveFormat учитывает глобальный флаг --json.
func resolveFormat(cmd *cobra.Command, name string) (output.Format, error) {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return output.FormatJSON, nil
	}
	return output.ParseFormat(name)
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

// addFieldFlags регистрирует флаг на каждое поле схемы и --set key=value.
func addFieldFlags(cmd *cobra.Command, schema record.Schema, set *[]string) {
	for _, f := range schema.Fields {
		cmd.Flags().String(flagName(f.Name), "", f.Label)
	}
	cmd.Flags().StringArrayVar(set, "set", nil, "значение поля в виде key=value (можно повторять)")
}

// fieldValues собирает значения из флагов полей и --set. Непереданные поля
// в результат не попадают.
func fieldValues(cmd *cobra.Command, schema record.Schema, set []string) (map[string]any, error) {
	values, err := ParseValues(schema, set)
	if err != nil {
		return nil, err
	}
	for _, f := range schema.Fields {
		name := flagName(f.Name)
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return nil, err
		}
		values[f.Name] = v
	}
	return values, nil
}

// ParseValues разбирает пары key=value. Ключ - имя поля схемы.
func ParseValues(schema record.Schema, pairs []string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("ожидается key=value, получено %q", pair)
		}
		key = strings.ReplaceAll(strings.TrimSpace(key), "-", "_")
		if _, known := schema.Field(key); !known {
			return nil, fmt.Errorf("неизвестное поле %q, доступны: %s", key, strings.Join(fieldNames(schema), ", "))
		}
		values[key] = value
	}
	return values, nil
}

func fieldNames(schema record.Schema) []string {
	names := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		names = append(names, f.Name)
	}
	return names
}

// SplitArgs делит строку на аргументы по пробелам. Двойные кавычки
// объединяют слова: name="Dewi Sari".
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case (r == ' ' || r == '\t') && !inQuote:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("незакрытая кавычка")
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}
