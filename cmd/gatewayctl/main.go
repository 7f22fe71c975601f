package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shamanic-technologies/email-sending-service/internal/auth"
	"github.com/shamanic-technologies/email-sending-service/internal/config"
	emailgateway "github.com/shamanic-technologies/email-sending-service/sdk/go"
)

var (
	gatewayURL string
	token      string
	appID      string

	statsChannel  string
	statsGroupBy  string
	statsCampaign string
	statsBrand    string
	statsWorkflow string

	statusCampaign string
	statusEmails   []string
)

var rootCmd = &cobra.Command{
	Use:   "gatewayctl",
	Short: "Operator CLI for the email gateway",
}

var sendCmd = &cobra.Command{
	Use:   "send [request.json]",
	Short: "Dispatch a send request read from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSend,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Query aggregated provider stats, flat or grouped",
	RunE:  runStats,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query merged per-recipient status for a campaign",
	RunE:  runStatus,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway-url", "http://localhost:8080", "gateway base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("EMAILGW_CLI_TOKEN"), "service bearer token")
	rootCmd.PersistentFlags().StringVar(&appID, "app", "gatewayctl", "app ID to mint a token for when --token is not set")

	statsCmd.Flags().StringVar(&statsChannel, "channel", "", "restrict to one channel (transactional or broadcast)")
	statsCmd.Flags().StringVar(&statsGroupBy, "group-by", "", "group dimension (brand, campaign, workflow, email)")
	statsCmd.Flags().StringVar(&statsCampaign, "campaign", "", "filter by campaign ID")
	statsCmd.Flags().StringVar(&statsBrand, "brand", "", "filter by brand ID")
	statsCmd.Flags().StringVar(&statsWorkflow, "workflow", "", "filter by workflow ID")

	statusCmd.Flags().StringVar(&statusCampaign, "campaign", "", "campaign ID (required)")
	statusCmd.Flags().StringArrayVar(&statusEmails, "email", nil, "recipient email (repeatable, required)")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newClient() (*emailgateway.Client, error) {
	if token == "" {
		// Mint a short-lived token from the locally configured secret,
		// the same way sibling services do
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		tokenSvc, err := auth.NewTokenService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("no --token given and %w", err)
		}
		token, err = tokenSvc.GenerateToken(appID, 15*time.Minute)
		if err != nil {
			return nil, err
		}
	}

	return emailgateway.NewClient(emailgateway.Config{
		BaseURL: gatewayURL,
		Token:   token,
	}), nil
}

func runSend(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var req emailgateway.SendRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("failed to parse send request: %w", err)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	result, err := client.Send(context.Background(), req)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runStats(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	req := emailgateway.StatsRequest{
		Channel: statsChannel,
		Filter: emailgateway.StatsFilter{
			CampaignID: statsCampaign,
			BrandID:    statsBrand,
			WorkflowID: statsWorkflow,
		},
		GroupBy: statsGroupBy,
	}

	if statsGroupBy != "" {
		grouped, err := client.GroupedStats(context.Background(), req)
		if err != nil {
			return err
		}
		return printJSON(grouped)
	}

	stats, err := client.Stats(context.Background(), req)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusCampaign == "" {
		return fmt.Errorf("--campaign is required")
	}
	if len(statusEmails) == 0 {
		return fmt.Errorf("at least one --email is required")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	items := make([]emailgateway.StatusItem, 0, len(statusEmails))
	for _, email := range statusEmails {
		items = append(items, emailgateway.StatusItem{Email: email})
	}

	resp, err := client.Status(context.Background(), emailgateway.StatusRequest{
		CampaignID: statusCampaign,
		Items:      items,
	})
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
