package resource

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/app/client"
	"boothadmin/internal/domain/record"
)

var errNoValues = errors.New("не передано ни одного поля: используйте флаги полей или --set key=value")

func newAddCmd(kind record.Kind) *cobra.Command {
	var (
		set    []string
		format string
	)
	schema := kind.Schema()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить запись",
		Long: `Создает запись на сервере. Поля передаются флагами (--name, --item-name)
или через --set key=value.`,
		Example: fmt.Sprintf("  boothadmin %s add --set %s=...", CommandName(kind), schema.Fields[0].Name),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			f, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}
			values, err := fieldValues(cmd, schema, set)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return errNoValues
			}

			rec, err := app.Page(kind).Create(cmd.Context(), values)
			if err != nil {
				return err
			}
			return output.Record(cmd.OutOrStdout(), schema, rec, f)
		},
	}

	addFieldFlags(cmd, schema, &set)
	addFormatFlag(cmd, &format)
	return cmd
}

func newEditCmd(kind record.Kind) *cobra.Command {
	var (
		set    []string
		format string
	)
	schema := kind.Schema()

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Изменить запись",
		Long: `Отправляет запись целиком: текущие значения с сервера, поверх которых
наложены переданные поля.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			f, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}
			values, err := fieldValues(cmd, schema, set)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return errNoValues
			}

			page, err := app.Mount(cmd.Context(), kind)
			if err != nil {
				return fmt.Errorf("не удалось загрузить коллекцию: %w", err)
			}
			rec, err := page.Update(cmd.Context(), args[0], values)
			if err != nil {
				return err
			}
			return output.Record(cmd.OutOrStdout(), schema, rec, f)
		},
	}

	addFieldFlags(cmd, schema, &set)
	addFormatFlag(cmd, &format)
	return cmd
}
