package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/Clay-Ferguson/quanta-docs/internal/cli/prompt"
	"github.com/Clay-Ferguson/quanta-docs/pkg/config"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
)

var (
	useraddUsername string
	useraddOwnerID  int64
	useraddPassword string
)

var useraddCmd = &cobra.Command{
	Use:   "useradd",
	Short: "Generate a users entry for the configuration file",
	Long: `Generate a bcrypt-hashed users entry for the configuration file.

Prompts for the username and password when they are not given as flags, then
prints a YAML snippet to append to the "users" section of the config. The
owner id is the numeric principal recorded on every node the user creates;
owner id 0 is the admin principal.

Examples:
  # Interactive
  quanta useradd

  # Non-interactive (password on the command line ends up in shell history)
  quanta useradd --username alice --owner-id 2 --password s3cret-pass`,
	RunE: runUseradd,
}

func init() {
	useraddCmd.Flags().StringVar(&useraddUsername, "username", "", "Login name for the new user")
	useraddCmd.Flags().Int64Var(&useraddOwnerID, "owner-id", 0, "Numeric principal id (0 is the admin principal)")
	useraddCmd.Flags().StringVar(&useraddPassword, "password", "", "Password (prompted when omitted)")
}

func runUseradd(cmd *cobra.Command, args []string) error {
	username := strings.TrimSpace(useraddUsername)
	if username == "" {
		var err error
		username, err = prompt.InputRequired("Username")
		if err != nil {
			return err
		}
	}

	ownerID := useraddOwnerID
	if !cmd.Flags().Changed("owner-id") {
		raw, err := prompt.Input("Owner id", "1")
		if err != nil {
			return err
		}
		ownerID, err = strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || ownerID < 0 {
			return fmt.Errorf("owner id must be a non-negative integer")
		}
	}
	if ownerID == vfs.AdminOwnerID {
		confirmed, err := prompt.Confirm("Owner id 0 is the admin principal. Continue", false)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("aborted: pick a non-zero --owner-id")
		}
	}

	password := useraddPassword
	if password == "" {
		var err error
		password, err = prompt.NewPassword()
		if err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	snippet := struct {
		Users []config.UserConfig `yaml:"users"`
	}{
		Users: []config.UserConfig{{
			Username:     username,
			PasswordHash: string(hash),
			OwnerID:      ownerID,
		}},
	}
	out, err := yaml.Marshal(snippet)
	if err != nil {
		return fmt.Errorf("failed to render snippet: %w", err)
	}

	fmt.Println("Append this to your configuration file (merge into an existing users list):")
	fmt.Println()
	fmt.Print(string(out))
	return nil
}
