package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"boothadmin/internal/app/client"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти и удалить сохраненную сессию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.Logout(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка выхода: %w", err)
		}
		fmt.Println("✓ Сессия завершена")
		return nil
	},
}
