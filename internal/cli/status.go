package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check Microsoft Graph authentication",
	Long: `Check whether the configured credentials authenticate against Microsoft
Graph. Probes the Graph organization endpoint with the live credential.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	status := session.GetAuthStatus(cmd.Context())
	if !status.IsAuthenticated {
		fmt.Println("Not authenticated.")
		fmt.Println()
		fmt.Println("Provide either a pre-issued Graph token in AUTH_TOKEN, or an Azure AD")
		fmt.Println("application via AZURE_TENANT_ID, AZURE_CLIENT_ID and AZURE_CLIENT_SECRET.")
		return nil
	}

	fmt.Println("Authenticated.")
	if status.TenantID != "" {
		fmt.Printf("  Tenant ID: %s\n", status.TenantID)
	}
	if status.ClientID != "" {
		fmt.Printf("  Client ID: %s\n", status.ClientID)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
