package resource

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"boothadmin/internal/app/client"
	"boothadmin/internal/domain/collection"
	"boothadmin/internal/domain/record"
)

func newDeleteCmd(kind record.Kind) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Удалить запись",
		Long:  `Удаляет запись после подтверждения. Флаг --yes пропускает вопрос.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := client.FromContext(cmd.Context())
			if err != nil {
				return err
			}

			page, err := app.Mount(cmd.Context(), kind)
			if err != nil {
				return fmt.Errorf("не удалось загрузить коллекцию: %w", err)
			}

			id := args[0]
			if err := page.ArmDelete(id); err != nil {
				return err
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), page, id) {
				page.CancelDelete(id)
				fmt.Fprintln(cmd.OutOrStdout(), "Удаление отменено")
				return nil
			}
			return page.Delete(cmd.Context(), id)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "не спрашивать подтверждение")
	return cmd
}

// confirm задает вопрос об удалении и ждет ответа y/yes.
func confirm(in io.Reader, out io.Writer, page *collection.Page, id string) bool {
	title := id
	if rec, ok := page.Store.Find(id); ok && len(page.Schema.Fields) > 0 {
		if v := rec.String(page.Schema.Fields[0].Name); v != "" {
			title = fmt.Sprintf("%s (%s)", id, v)
		}
	}

	fmt.Fprintf(out, "Удалить запись %s? [y/N]: ", title)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "д", "да":
		return true
	}
	return false
}
