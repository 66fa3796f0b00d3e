package resource

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/app/client"
	"boothadmin/internal/domain/record"
)

// NewReturnCmd - отметка возврата оборудования по записи журнала выдачи.
func NewReturnCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "return [id]",
		Short: "Отметить возврат оборудования",
		Long:  `Переводит запись журнала в статус returned с сегодняшней датой возврата.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			f, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}

			page, err := app.Mount(cmd.Context(), record.KindLogs)
			if err != nil {
				return fmt.Errorf("не удалось загрузить журнал: %w", err)
			}

			if rec, ok := page.Store.Find(args[0]); ok && client.IsReturned(rec) {
				fmt.Fprintf(cmd.OutOrStdout(), "Запись %s уже закрыта (%s)\n", rec.ID, rec.String("return_date"))
				return nil
			}

			rec, err := page.Update(cmd.Context(), args[0], client.ReturnValues(time.Now()))
			if err != nil {
				return err
			}
			return output.Record(cmd.OutOrStdout(), page.Schema, rec, f)
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}
