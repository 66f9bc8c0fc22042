package cmd

import (
	"fmt"

	"github.com/RobsonDevCode/vareport/internal/clients"
	"github.com/RobsonDevCode/vareport/internal/configuration"
	"github.com/RobsonDevCode/vareport/internal/exitcodes"
	scastokenservice "github.com/RobsonDevCode/vareport/internal/services/scasTokenService"
	stakoservice "github.com/RobsonDevCode/vareport/internal/services/stakoService"
	"github.com/spf13/cobra"
)

var scasTokenCmd = &cobra.Command{
	Use:   "scas-token",
	Short: "return a SCAS offline access token",
	Long: `scas-token logs in to SCAS and prints an offline access token, together with
the page where it can be revoked.

The password is prompted for when --password is not given.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runScasToken,
}

var stakoCmd = &cobra.Command{
	Use:   "stako",
	Short: "return the STAKO level for the required GAV",
	Long: `stako returns the STAKO level of a group:artifact:version (GAV) from SCAS.

The offline access token is read from the environment variable named in the
configuration (SCAS_OFFLINE_TOKEN by default). Select a GAV (-g) or an input
file (-i) to process. Results are printed, or written to -o, one per line as
'stako_level,group,artifact,version'.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runStako,
}

const (
	UsernameFlag = "username"
	PasswordFlag = "password"
	DisableFlag  = "disable"
	GavFlag      = "gav"
	InputFlag    = "input"
	OutputFlag   = "output"
)

func newScasClient(cmd *cobra.Command, config *configuration.Config) (clients.ScasClientService, error) {
	disable, _ := cmd.Flags().GetBool(DisableFlag)
	return scasClientFactory(config, !disable)
}

func runScasToken(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString(UsernameFlag)
	password, _ := cmd.Flags().GetString(PasswordFlag)

	config, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newScasClient(cmd, config)
	if err != nil {
		return err
	}

	tokenService := scastokenservice.NewScasTokenIssuer(client, config.ScasClientSettings.AccountUrl())
	if password == "" {
		password, err = tokenService.PromptPassword(username)
		if err != nil {
			return err
		}
	}

	token, err := tokenService.IssueOfflineToken(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	fmt.Printf("Offline access token:\n%s\n", token.Token)
	fmt.Printf("\nTo revoke it, please use the following link:\n%s\n\n", token.RevokeUrl)
	return nil
}

func runStako(cmd *cobra.Command, args []string) error {
	gav, _ := cmd.Flags().GetString(GavFlag)
	input, _ := cmd.Flags().GetString(InputFlag)
	output, _ := cmd.Flags().GetString(OutputFlag)

	if gav == "" && input == "" {
		return exitcodes.Usagef("select a GAV (-g) or an input file (-i) to process")
	}

	if gav != "" && !stakoservice.ValidateGav(gav) {
		return exitcodes.Usagef("GAV not correctly passed.\nAccepted values are:\n\tgroup:artifact:version\n\t:artifact:version")
	}

	config, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newScasClient(cmd, config)
	if err != nil {
		return err
	}

	stakoService := stakoservice.NewStakoLookup(client, config.ScasClientSettings.OfflineTokenEnv)
	accessToken, err := stakoService.Authenticate(cmd.Context())
	if err != nil {
		return err
	}

	var result string
	if gav != "" {
		result, err = stakoService.LookupGav(cmd.Context(), accessToken, gav)
	} else {
		result, err = stakoService.LookupGavFile(cmd.Context(), accessToken, input)
	}
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Println(result)
		return nil
	}

	return stakoService.WriteResult(result, output)
}

func init() {
	scasTokenCmd.Flags().StringP(UsernameFlag, "u", "", "The username")
	scasTokenCmd.Flags().StringP(PasswordFlag, "p", "", "The password")
	scasTokenCmd.Flags().BoolP(DisableFlag, "d", false, "Disable site certificate verification.")
	scasTokenCmd.MarkFlagRequired(UsernameFlag)

	stakoCmd.Flags().StringP(GavFlag, "g", "", "the group:artifact:version (GAV) to search the STAKO level for, "+
		"'group:artifact:version' or ':artifact:version'")
	stakoCmd.Flags().StringP(InputFlag, "i", "", "the file listing one GAV per line")
	stakoCmd.Flags().StringP(OutputFlag, "o", "", "the file to write the 'stako_level,group,artifact,version' lines to")
	stakoCmd.Flags().BoolP(DisableFlag, "d", false, "Disable site certificate verification.")
	stakoCmd.MarkFlagsMutuallyExclusive(GavFlag, InputFlag)

	rootCmd.AddCommand(scasTokenCmd)
	rootCmd.AddCommand(stakoCmd)
}
