package gallery

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/app/client"
)

// GalleryCmd - родительская команда медиатеки
var GalleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Галерея фото и видео",
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список файлов галереи",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		items, err := app.Gallery().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка загрузки галереи: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return output.JSON(os.Stdout, items)
		}
		if len(items) == 0 {
			fmt.Println("Галерея пуста")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tТип\tURL\tЗагружено\t\n")
		fmt.Fprintf(w, "---\t---\t---\t---\t\n")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", it.ID, it.Type, it.URL, it.CreatedAt)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\nВсего файлов: %d\n", len(items))
		return nil
	},
}

var UploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Загрузить фото или видео",
	Long: `Загружает файлы в галерею. Тип определяется по содержимому файла:
изображения уходят в поле image, видео в поле video, остальные файлы
отклоняются без отправки.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		var failed int
		for _, file := range args {
			field, err := app.Gallery().Upload(cmd.Context(), file)
			if err != nil {
				failed++
				fmt.Printf("✗ %s: %v\n", file, err)
				continue
			}
			fmt.Printf("✓ %s (%s)\n", file, field)
		}

		if failed > 0 {
			return fmt.Errorf("не загружено файлов: %d из %d", failed, len(args))
		}
		return nil
	},
}
