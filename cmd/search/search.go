// Package search implements the search command for looking up companies
// in Elasticsearch by name, phone number, URL, or address.
package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/companyfinder/cmd/common"
	"github.com/jonesrussell/companyfinder/internal/company"
	"github.com/jonesrussell/companyfinder/internal/search"
)

const (
	// DefaultValuePreviewLength defines the maximum length for field values
	// in the results table before truncation
	DefaultValuePreviewLength = 80
)

var (
	names     []string
	phones    []string
	urls      []string
	addresses []string
	debugMode bool
)

// Command returns the search command for use in the root command
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for companies in Elasticsearch",
		Long: `Search command looks up companies by any combination of name,
phone number, URL, and address. At least one field must be provided.

Examples:
  # Find the best match for a company name
  companyfinder search --name "Acme Widgets"

  # Combine criteria and show the top scored candidates
  companyfinder search --name Acme --url acme.com --debug
`,
		RunE: runSearch,
	}

	cmd.Flags().StringSliceVarP(&names, "name", "n", nil, "Company name to search for (repeatable)")
	cmd.Flags().StringSliceVarP(&phones, "phone", "p", nil, "Phone number to search for (repeatable)")
	cmd.Flags().StringSliceVarP(&urls, "url", "u", nil, "URL or domain to search for (repeatable)")
	cmd.Flags().StringSliceVarP(&addresses, "address", "a", nil, "Address to search for (repeatable)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Show the top scored candidates instead of the best match")

	return cmd
}

// runSearch executes the search command with the provided flags
func runSearch(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	store, err := common.CreateStorage(deps.Config, deps.Logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}

	svc := search.NewService(store, deps.Logger)

	req := &search.Request{
		Name:    company.StringList(names),
		Phone:   company.StringList(phones),
		URLs:    company.StringList(urls),
		Address: company.StringList(addresses),
		Debug:   debugMode,
	}

	return executeSearch(cmd.Context(), svc, req)
}

// executeSearch runs the lookup and renders the outcome
func executeSearch(ctx context.Context, svc *search.Service, req *search.Request) error {
	result, err := svc.Search(ctx, req)
	if err != nil {
		if errors.Is(err, search.ErrNoCriteria) {
			return errors.New("provide at least one of --name, --phone, --url, or --address")
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if !result.Found {
		fmt.Fprintf(os.Stdout, "%s\n", result.Message)
		return nil
	}

	if req.Debug {
		renderMatchTable(result.Results)
		return nil
	}

	renderCompanyTable(result.Score, result.Company)
	return nil
}

// renderMatchTable displays the scored candidates from a debug search
func renderMatchTable(matches []search.Match) {
	t := configureResultsTable()
	t.AppendHeader(table.Row{"#", "Score", "Domain", "Names", "Phones"})

	for i, match := range matches {
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.2f", match.Score),
			stringField(match.Company, "domain"),
			listField(match.Company, "company_names"),
			listField(match.Company, "phones"),
		})
	}

	t.AppendFooter(table.Row{"Total", len(matches), "", "", ""})

	fmt.Fprintf(os.Stdout, "\nSearch Results:\n")
	t.Render()
}

// renderCompanyTable displays the best matching company field by field
func renderCompanyTable(score float64, doc map[string]any) {
	t := configureResultsTable()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"score", fmt.Sprintf("%.2f", score)})

	fields := make([]string, 0, len(doc))
	for field := range doc {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		t.AppendRow(table.Row{field, truncateString(renderValue(doc[field]), DefaultValuePreviewLength)})
	}

	fmt.Fprintf(os.Stdout, "\nBest Match:\n")
	t.Render()
}

// configureResultsTable sets up the table writer with the shared styling
func configureResultsTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.DrawBorder = true
	t.Style().Options.SeparateRows = true
	return t
}

// stringField extracts a string field from a company document
func stringField(doc map[string]any, field string) string {
	s, _ := doc[field].(string)
	if s == "" {
		return "N/A"
	}
	return s
}

// listField extracts an array field from a company document as a
// comma separated preview
func listField(doc map[string]any, field string) string {
	raw, ok := doc[field].([]any)
	if !ok || len(raw) == 0 {
		return "N/A"
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, sok := v.(string); sok {
			values = append(values, s)
		}
	}
	return truncateString(strings.Join(values, ", "), DefaultValuePreviewLength)
}

// renderValue flattens a document value into display text
func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truncateString truncates a string to the specified length and adds ellipsis if needed
func truncateString(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
