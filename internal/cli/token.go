package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aiornot/gosdk"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the API token",
	}
	cmd.AddCommand(
		newTokenCheckCmd(),
		newTokenConfigCmd(),
	)
	return cmd
}

func newTokenCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the API is reachable with your configured token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			live, err := client.IsLive(cmd.Context())
			if err != nil {
				return err
			}
			if !live {
				return errors.New("API is not responding")
			}
			fmt.Println("API is live and your token is configured.")
			return nil
		},
	}
}

func confirm(reader *bufio.Reader, prompt string) (bool, error) {
	fmt.Printf("%s [y/N] ", prompt)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	a := strings.ToLower(strings.TrimSpace(answer))
	return a == "y" || a == "yes", nil
}

func newTokenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Save your API token to ~/.aiornot/config.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			fmt.Println("Go to https://aiornot.com/dashboard/api to get an API key.")
			fmt.Print("API key: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			apiKey := strings.TrimSpace(line)
			if apiKey == "" {
				return errors.New("no API key entered")
			}

			client, err := aiornot.New(aiornot.WithAPIKey(apiKey))
			if err != nil {
				return err
			}
			defer client.Close()

			live, err := client.IsLive(cmd.Context())
			if err != nil || !live {
				fmt.Println("Warning: Could not verify API key (API may be down).")
				save, err := confirm(reader, "Save anyway?")
				if err != nil {
					return err
				}
				if !save {
					return nil
				}
			}

			if path, err := configPath(); err == nil {
				if _, statErr := os.Stat(path); statErr == nil {
					overwrite, err := confirm(reader, "Overwrite existing API token?")
					if err != nil {
						return err
					}
					if !overwrite {
						fmt.Println("Not overwriting existing API token.")
						return nil
					}
				}
			}

			path, err := saveAPIKey(apiKey)
			if err != nil {
				return err
			}
			fmt.Printf("API key saved to %s\n", path)
			return nil
		},
	}
}
