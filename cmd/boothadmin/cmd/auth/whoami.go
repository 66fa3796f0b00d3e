package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boothadmin/cmd/boothadmin/cmd/output"
	"boothadmin/internal/app/client"
	"boothadmin/internal/domain/session"
)

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущую сессию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		sess, err := app.Sessions().Current(cmd.Context())
		if errors.Is(err, session.ErrUnauthenticated) {
			fmt.Println("Вход не выполнен. Используйте: boothadmin auth login")
			return nil
		}
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return output.JSON(os.Stdout, map[string]string{
				"user_id":   sess.UserID,
				"user_name": sess.UserName,
				"role":      sess.Role,
			})
		}

		fmt.Printf("Пользователь: %s\n", sess.UserName)
		fmt.Printf("ID:           %s\n", sess.UserID)
		fmt.Printf("Роль:         %s\n", sess.Role)
		fmt.Printf("Сервер:       %s\n", app.Config().APIBaseURL)
		return nil
	},
}
