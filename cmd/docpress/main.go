package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ordersuite/docpress/pkg/docpress"
)

var version = "dev"

var (
	flagTemplates string
	flagData      string
	flagLocale    string
	flagOut       string
	flagStrict    bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "docpress",
	Short:         "Render order-confirmation and invoice documents from templates",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var renderCmd = &cobra.Command{
	Use:   "render <kind>",
	Short: "Render a document kind with a JSON data context",
	Long: `Render a document kind (order-confirmation or invoice) against a JSON
data context and print the resulting HTML.

  docpress render order-confirmation --data order.json --locale vi`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		data := docpress.TemplateData{}
		if flagData != "" {
			raw, err := os.ReadFile(flagData)
			if err != nil {
				return fmt.Errorf("failed to read data context: %w", err)
			}
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("failed to parse data context: %w", err)
			}
		}

		locale, ok := docpress.ParseLocale(flagLocale)
		if !ok {
			return fmt.Errorf("unsupported locale %q", flagLocale)
		}

		html, err := engine.Render(docpress.DocumentKind(args[0]), data, locale)
		if err != nil {
			return err
		}

		if flagOut != "" {
			return os.WriteFile(flagOut, []byte(html), 0o644)
		}
		fmt.Print(html)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <kind>",
	Short: "Statically check a document kind's template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		result, err := engine.Validate(docpress.DocumentKind(args[0]))
		if err != nil {
			return err
		}

		if result.Valid {
			fmt.Printf("%s: valid\n", args[0])
			return nil
		}
		for _, issue := range result.Issues {
			fmt.Printf("%s: %s\n", args[0], issue)
		}
		return fmt.Errorf("%d validation issues", len(result.Issues))
	},
}

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List the supported locales",
	Run: func(cmd *cobra.Command, args []string) {
		for _, locale := range docpress.SupportedLocales() {
			fmt.Println(locale)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docpress %s\n", version)
	},
}

func newEngine() (*docpress.Engine, error) {
	opts := []docpress.Option{
		docpress.WithConfig(docpress.ConfigFromEnvironment()),
	}
	if flagVerbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		opts = append(opts, docpress.WithLogger(log))
	}
	if flagTemplates != "" {
		opts = append(opts, docpress.WithSource(docpress.NewDirSource(flagTemplates)))
	}
	if flagStrict {
		opts = append(opts, docpress.WithStrictValidation())
	}
	return docpress.New(opts...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTemplates, "templates", "", "Template directory (default: embedded templates)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	renderCmd.Flags().StringVar(&flagData, "data", "", "JSON file with the data context")
	renderCmd.Flags().StringVar(&flagLocale, "locale", string(docpress.DefaultLocale), "Locale for translations and date formatting")
	renderCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().BoolVar(&flagStrict, "strict", false, "Fail on validation issues")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(localesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
