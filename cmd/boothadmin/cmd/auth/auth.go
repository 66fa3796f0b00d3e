package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для входа и выхода администратора
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление сессией",
	Long:  `Вход, выход и просмотр текущей сессии.`,
}
