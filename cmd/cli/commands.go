package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var dataType string

func init() {
	matchesCmd.Flags().StringVar(&dataType, "data-type", "liveUpcoming", "Query: liveUpcoming, live, old or all")
	refreshCmd.Flags().StringVar(&dataType, "data-type", "liveUpcoming", "Query: liveUpcoming, live or old")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the current matches for one query",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches?dataType="+url.QueryEscape(dataType))
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline <apiMatchId>",
	Short: "Fetch the hydrated timeline for one match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches/"+url.PathEscape(args[0])+"/timeline")
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force an out-of-cycle poll for one query",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/refresh?dataType="+url.QueryEscape(dataType)+"&force=true")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics")
	},
}

func performRequest(method, endpoint string) error {
	reqURL := host + endpoint
	fmt.Printf("Making request to %s\n", reqURL)

	req, err := http.NewRequest(method, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
