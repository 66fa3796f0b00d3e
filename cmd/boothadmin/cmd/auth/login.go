package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"boothadmin/internal/app/client"
)

var (
	email    string
	password string
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в панель администратора",
	Long: `Аутентификация на сервере фотобудки.

После входа токен и профиль сохраняются локально для последующих команд.
Пароль запрашивается без эха, если не передан флагом --password.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := client.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if email == "" {
			fmt.Print("Email: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("ошибка чтения email: %w", err)
			}
			email = strings.TrimSpace(line)
		}

		if password == "" {
			fmt.Print("Пароль: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("ошибка чтения пароля: %w", err)
			}
			fmt.Println()
			password = string(raw)
		}

		fmt.Println("Аутентификация...")
		sess, err := app.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Println()
		fmt.Printf("✅ Вход выполнен: %s (%s)\n", sess.UserName, sess.Role)
		if !sess.IsAdmin() {
			fmt.Println("⚠️  У пользователя нет роли admin, часть операций может быть отклонена сервером")
		}
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&email, "email", "e", "", "email администратора")
	LoginCmd.Flags().StringVarP(&password, "password", "p", "", "пароль (не рекомендуется, попадает в историю shell)")
}
