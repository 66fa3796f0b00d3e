package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/app/client"
	"boothadmin/internal/domain/record"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Сводка по всем коллекциям",
	Long: `Загружает пользователей, оборудование, журнал выдачи и мероприятия
и показывает счетчики, оборудование без остатка, невозвращенные выдачи
и ближайшие мероприятия.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		sum, err := app.Dashboard(cmd.Context(), time.Now())
		if err != nil {
			return fmt.Errorf("ошибка загрузки сводки: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return output.JSON(os.Stdout, sum)
		}

		fmt.Println("=== Сводка ===")
		for _, kind := range record.Kinds() {
			fmt.Printf("%-16s %d\n", kind.DisplayName()+":", sum.Counts[kind])
		}

		section := func(title string, kind record.Kind, records []record.Record) error {
			fmt.Println()
			fmt.Printf("%s (%d)\n", title, len(records))
			if len(records) == 0 {
				fmt.Println("  -")
				return nil
			}
			return output.Records(os.Stdout, kind.Schema(), records, output.FormatSimple)
		}

		if err := section("Нет в наличии", record.KindTools, sum.OutOfStock); err != nil {
			return err
		}
		if err := section("Не возвращено", record.KindLogs, sum.OpenLogs); err != nil {
			return err
		}
		return section("Ближайшие мероприятия", record.KindEvents, sum.UpcomingEvents)
	},
}
