package attendance

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/app/client"
	domain "boothadmin/internal/domain/attendance"
)

var (
	status    string
	photoPath string
)

// AttendanceCmd - родительская команда отметок посещаемости
var AttendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Отметки посещаемости",
}

var SubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Отправить отметку с фото",
	Long: `Отправляет отметку текущего пользователя: статус, дату, время и фото.

Фото уменьшается и кодируется в JPEG base64 перед отправкой.
Допустимые статусы: ` + strings.Join(domain.Statuses(), ", ") + `.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		if photoPath == "" {
			return fmt.Errorf("укажите фото: --photo путь/к/файлу")
		}

		sub, err := app.SubmitAttendance(cmd.Context(), status, photoPath, time.Now())
		if err != nil {
			return fmt.Errorf("ошибка отправки отметки: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			sub.Photo = fmt.Sprintf("<%d base64 bytes>", len(sub.Photo))
			return output.JSON(os.Stdout, sub)
		}
		fmt.Printf("✅ Отметка отправлена: %s, %s %s, статус %s\n", sub.Name, sub.Date, sub.Time, sub.Status)
		return nil
	},
}

func init() {
	SubmitCmd.Flags().StringVarP(&status, "status", "s", domain.StatusPresent, "статус отметки")
	SubmitCmd.Flags().StringVar(&photoPath, "photo", "", "путь к фото (jpeg, png, gif, bmp, tiff)")
}
