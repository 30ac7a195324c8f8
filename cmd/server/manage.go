package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/forms"
)

// groupCmd и userCmd заменяют админку: группы создаются только отсюда
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Управление группами",
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Управление пользователями",
}

var (
	groupDescription string
	userPassword     string
)

var groupCreateCmd = &cobra.Command{
	Use:   "create <slug> <title>",
	Short: "Создать группу",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openPersistentStores()
		if err != nil {
			return err
		}
		defer st.Close()

		g, err := st.groups.CreateGroup(cmd.Context(), args[1], args[0], groupDescription)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "group %q created with id %d\n", g.Slug, g.ID)
		return nil
	},
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Создать пользователя",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form := forms.SignupForm{Username: args[0], Password: userPassword, PasswordConfirm: userPassword}
		if errs := forms.Validate(form); errs != nil {
			return errs
		}

		st, err := openPersistentStores()
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := st.users.CreateUser(cmd.Context(), form.Username, form.Password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %q created with id %d\n", u.Username, u.ID)
		return nil
	},
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "Описание группы")
	groupCmd.AddCommand(groupCreateCmd)

	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "Пароль (не меньше 8 символов)")
	_ = userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd)
}

// openPersistentStores: в памяти созданное пропало бы вместе с процессом
func openPersistentStores() (*stores, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Storage == config.StorageMemory {
		return nil, errors.New("this command needs postgres or sqlite storage")
	}
	return openStores(cfg)
}
