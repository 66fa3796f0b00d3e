package resource

import (
	"fmt"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/app/client"
	"boothadmin/internal/domain/record"
)

func newGetCmd(kind record.Kind) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Просмотреть запись",
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

			rec, err := app.Get(cmd.Context(), kind, args[0])
			if err != nil {
				return fmt.Errorf("ошибка получения записи: %w", err)
			}
			return output.Record(cmd.OutOrStdout(), kind.Schema(), rec, f)
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}
