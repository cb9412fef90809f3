package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vuori/storefront-e2e/internal/bootstrap"
	"github.com/vuori/storefront-e2e/internal/countries"
	"github.com/vuori/storefront-e2e/internal/env"
	"github.com/vuori/storefront-e2e/internal/resolver"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "storefront-e2e",
	Short: "Storefront E2E harness - environment resolution and auth bootstrap",
	Long: `Storefront E2E harness

Resolves the target storefront for a country/branch pair and bootstraps the
authenticated browser storage state the test suite starts from. Useful as a
CI pre-step or for debugging environment resolution locally.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var (
	countryFlag   string
	branchFlag    string
	headlessFlag  bool
	statePathFlag string
	tableFlag     string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run global setup: resolve the environment and write the auth storage state",
	RunE:  runSetup,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the resolved configuration for a country/branch pair",
	RunE:  runResolve,
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the country table with domains computed for a branch",
	RunE:  runCountries,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&countryFlag, "country", "", "country code (default: COUNTRY env or US)")
	rootCmd.PersistentFlags().StringVar(&branchFlag, "branch", "", "deployment branch (default: BRANCH env or production)")
	rootCmd.PersistentFlags().StringVar(&tableFlag, "country-table", "", "YAML file replacing the built-in country table")

	setupCmd.Flags().BoolVar(&headlessFlag, "headless", false, "launch the bootstrap browser headless")
	setupCmd.Flags().StringVar(&statePathFlag, "state-path", bootstrap.DefaultStorageStatePath, "where to write the storage state")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(countriesCmd)
}

func loadCountryTable() error {
	if tableFlag == "" {
		return nil
	}
	return countries.LoadTable(tableFlag)
}

func runSetup(cmd *cobra.Command, args []string) error {
	if err := loadCountryTable(); err != nil {
		return err
	}

	// Tag this run's artifacts so parallel CI jobs don't clobber each other.
	runID := uuid.NewString()[:8]
	artifactDir := filepath.Join("test-results", "run-"+runID)
	if err := os.MkdirAll(artifactDir, 0o755); err != nil {
		return fmt.Errorf("could not create artifact dir: %w", err)
	}
	os.Setenv("ARTIFACT_DIR", artifactDir)

	res, err := bootstrap.Run(bootstrap.Options{
		Country:          countryFlag,
		Branch:           branchFlag,
		Headless:         headlessFlag || env.Bool("HEADLESS", false),
		StorageStatePath: statePathFlag,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run:           %s\n", runID)
	fmt.Printf("country:       %s\n", res.Country)
	fmt.Printf("branch:        %s\n", res.Branch)
	fmt.Printf("base url:      %s\n", res.BaseURL)
	fmt.Printf("cookie domain: %s\n", res.CookieDomain)
	fmt.Printf("storage state: %s\n", res.StorageStatePath)
	fmt.Printf("artifacts:     %s\n", artifactDir)
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	if err := loadCountryTable(); err != nil {
		return err
	}

	cfg, err := resolver.Resolve(countryFlag, branchFlag)
	if err != nil {
		return err
	}
	fmt.Printf("country:        %s\n", cfg.CountryCode)
	fmt.Printf("domain:         %s\n", cfg.Domain)
	fmt.Printf("cookie domain:  %s\n", cfg.CookieDomain)
	fmt.Printf("locale:         %s\n", cfg.Locale)
	fmt.Printf("currency:       %s\n", cfg.Currency)
	fmt.Printf("checkout:       %s\n", cfg.CheckoutDomain)
	return nil
}

func runCountries(cmd *cobra.Command, args []string) error {
	if err := loadCountryTable(); err != nil {
		return err
	}
	if branchFlag != "" {
		if err := os.Setenv("BRANCH", branchFlag); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tDOMAIN\tLOCALE\tCURRENCY\tCHECKOUT")
	for _, c := range countries.Generate() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.CountryCode, c.Domain, c.Locale, c.Currency, c.CheckoutDomain)
	}
	return w.Flush()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
