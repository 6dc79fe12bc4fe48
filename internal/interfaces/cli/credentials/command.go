package credentials

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"crmdesk/internal/infrastructure/config"
	"crmdesk/internal/infrastructure/credentials"
)

var configPath string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the Freshdesk API key in the OS keyring",
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set-freshdesk",
			Short: "Store the Freshdesk API key (read from the terminal without echo)",
			RunE:  runSet,
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show where the effective Freshdesk API key comes from",
			RunE:  runShow,
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored Freshdesk API key",
			RunE:  runClear,
		},
	)

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	fmt.Fprint(cmd.ErrOrStderr(), "Freshdesk API key: ")
	key, err := readSecret(cmd.InOrStdin())
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to read api key: %w", err)
	}

	if err := credentials.SetFreshdeskKey(key); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Freshdesk API key stored in the keyring")
	return nil
}

// readSecret disables echo when in is a terminal and falls back to reading
// one line otherwise, so the key can be piped in.
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func runShow(cmd *cobra.Command, args []string) error {
	configured := ""
	if cfg, err := config.Load("", configPath); err == nil {
		configured = cfg.Freshdesk.APIKey
	}

	key, source := credentials.ResolveFreshdeskKey(configured)
	out := cmd.OutOrStdout()
	if source == credentials.SourceNone {
		fmt.Fprintln(out, "No Freshdesk API key configured")
		return nil
	}
	fmt.Fprintf(out, "Source: %s\nKey:    %s\n", source, Mask(key))
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if err := credentials.ClearFreshdeskKey(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Freshdesk API key removed from the keyring")
	return nil
}

// Mask keeps the last four characters of key.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
