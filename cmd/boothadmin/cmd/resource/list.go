package resource

import (
	"fmt"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/app/client"
	"boothadmin/internal/domain/record"
)

func newListCmd(kind record.Kind) *cobra.Command {
	var (
		search string
		pageN  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список записей",
		Long: `Загружает коллекцию и показывает одну страницу.

Поиск (--search) ищет подстроку без учета регистра по текстовым полям.
Номер страницы за пределами диапазона приводится к ближайшей странице.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			f, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}

			page, err := app.Mount(cmd.Context(), kind)
			if err != nil {
				return fmt.Errorf("не удалось загрузить коллекцию: %w", err)
			}

			page.SetQuery(search)
			page.Paginate(pageN)
			return output.View(cmd.OutOrStdout(), page.Schema, page.View(), f)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "строка поиска")
	cmd.Flags().IntVarP(&pageN, "page", "p", 1, "номер страницы")
	addFormatFlag(cmd, &format)
	return cmd
}
