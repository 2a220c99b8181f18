package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

var (
	baseURL  string
	lastName string
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

var rootCmd = &cobra.Command{
	Use:           "formtest",
	Short:         "Smoke tests for the Pine Valley Furniture customer form",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		printHeader("Customer Profile Form - Test Suite")
		fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, baseURL, colorReset)
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run health, state, smart fill and analyze checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return NewTestClient(baseURL).runAllTests()
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health endpoint",
	RunE:  check(func(tc *TestClient) bool { return tc.testHealthCheck() }),
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Fetch and print the current form state",
	RunE:  check(func(tc *TestClient) bool { return tc.testState() }),
}

var smartFillCmd = &cobra.Command{
	Use:   "smart-fill",
	Short: "Trigger AI Smart Fill",
	RunE:  check(func(tc *TestClient) bool { return tc.testSmartFill() }),
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Set the last name if given, then trigger Analyze",
	RunE:  check(func(tc *TestClient) bool { return tc.testAnalyze(lastName) }),
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the form",
	RunE:  check(func(tc *TestClient) bool { return tc.testReset() }),
}

func check(fn func(*TestClient) bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !fn(NewTestClient(baseURL)) {
			return fmt.Errorf("%s failed", cmd.Name())
		}
		return nil
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the form service")
	analyzeCmd.Flags().StringVar(&lastName, "last-name", "", "Last name to set before analyzing")
	rootCmd.AddCommand(allCmd, healthCmd, stateCmd, smartFillCmd, analyzeCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() error {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"State", tc.testState},
		{"Smart Fill", tc.testSmartFill},
		{"Analyze", func() bool { return tc.testAnalyze("") }},
		{"Reset", tc.testReset},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		return fmt.Errorf("%d test(s) failed", failed)
	}
	return nil
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.do(http.MethodGet, "/health", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testState() bool {
	printTestHeader("Testing State Endpoint")

	state, ok := tc.expectState(http.MethodGet, "/api/state", nil)
	if !ok {
		return false
	}
	profile, _ := state["profile"].(map[string]interface{})
	if profile["currentDate"] == nil {
		printError("State is missing profile.currentDate")
		return false
	}

	printSuccess("State is valid")
	return true
}

func (tc *TestClient) testSmartFill() bool {
	printTestHeader("Testing Smart Fill")

	state, ok := tc.expectState(http.MethodPost, "/api/smart-fill", nil)
	if !ok {
		return false
	}
	profile, _ := state["profile"].(map[string]interface{})
	if name, _ := profile["lastName"].(string); name == "" {
		printError("Smart fill returned a profile without a last name")
		return false
	}

	printSuccess("Smart fill completed")
	return true
}

func (tc *TestClient) testAnalyze(name string) bool {
	printTestHeader("Testing Analyze")

	if name != "" {
		body := map[string]string{"value": name}
		if _, ok := tc.expectState(http.MethodPut, "/api/profile/fields/lastName", body); !ok {
			return false
		}
	}

	state, ok := tc.expectState(http.MethodPost, "/api/analyze", nil)
	if !ok {
		return false
	}
	insights, _ := state["insights"].([]interface{})
	if len(insights) == 0 {
		printError("Analyze produced no insights (check the server log)")
		return false
	}

	printSuccess(fmt.Sprintf("Analyze produced %d insight(s)", len(insights)))
	return true
}

func (tc *TestClient) testReset() bool {
	printTestHeader("Testing Reset")

	state, ok := tc.expectState(http.MethodPost, "/api/reset", nil)
	if !ok {
		return false
	}
	profile, _ := state["profile"].(map[string]interface{})
	if name, _ := profile["lastName"].(string); name != "" {
		printError(fmt.Sprintf("Expected empty last name after reset, got '%s'", name))
		return false
	}

	printSuccess("Reset restored the default profile")
	return true
}

// expectState performs a request that must answer 200 with a state payload.
func (tc *TestClient) expectState(method, path string, payload interface{}) (map[string]interface{}, bool) {
	status, body, err := tc.do(method, path, payload)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return nil, false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		printJSON(body)
		return nil, false
	}

	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return nil, false
	}
	state, ok := response["state"].(map[string]interface{})
	if !ok {
		printError("Invalid state format")
		return nil, false
	}

	printJSON(body)
	return state, true
}

func (tc *TestClient) do(method, path string, payload interface{}) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
