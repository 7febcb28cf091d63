package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/regexlint/pkg/rule"
	"github.com/praetorian-inc/regexlint/pkg/types"
)

var (
	rulesConfigPath string
	rulesPath       string
	rulesFormat     string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect lint rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lint rules",
	Long:  "Display the enabled lint rules with their effective levels",
	RunE:  runRulesList,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesListCmd.Flags().StringVar(&rulesConfigPath, "config", "", "Config file (default "+rule.DefaultConfigName+" if present)")
	rulesListCmd.Flags().StringVar(&rulesPath, "rules", "", "List and validate the rules of a YAML rules file instead")
	rulesListCmd.Flags().StringVar(&rulesFormat, "format", "table", "Output format: table, json")
}

func runRulesList(cmd *cobra.Command, args []string) error {
	var rules []*types.Rule
	if rulesPath != "" {
		r, err := rule.NewLoader().LoadRuleFile(rulesPath)
		if err != nil {
			return fmt.Errorf("loading rules from %s: %w", rulesPath, err)
		}
		rules = r
	} else {
		config, err := loadConfig(rulesConfigPath)
		if err != nil {
			return err
		}
		engine, err := rule.NewEngine(config, nil)
		if err != nil {
			return err
		}
		rules = engine.Rules()
	}

	switch rulesFormat {
	case "json":
		return outputRulesJSON(cmd, rules)
	case "table":
		return outputRulesTable(cmd, rules)
	default:
		return fmt.Errorf("unknown output format: %s", rulesFormat)
	}
}

type ruleJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Level       string   `json:"level"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

func outputRulesJSON(cmd *cobra.Command, rules []*types.Rule) error {
	out := make([]ruleJSON, 0, len(rules))
	for _, r := range rules {
		out = append(out, ruleJSON{
			ID:          r.ID,
			Name:        r.Name,
			Level:       string(r.Level),
			Description: r.Description,
			Categories:  r.Categories,
		})
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func outputRulesTable(cmd *cobra.Command, rules []*types.Rule) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tLevel\tName\tCategories\n")
	fmt.Fprintf(w, "--\t-----\t----\t----------\n")
	for _, r := range rules {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Level, r.Name, strings.Join(r.Categories, ","))
	}
	return nil
}
