package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/presseportal/presseportal"
)

var searchEntity string

// storiesCmd represents the stories command
var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "List current stories",
	Long:  `List the most recent stories across all publishers.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stories, err := client.GetStories(cmd.Context(), queryOptions(cmd)...)
		return printStories(stories, err)
	},
}

// publicServiceCmd represents the publicservice command
var publicServiceCmd = &cobra.Command{
	Use:   "publicservice",
	Short: "List public service news",
	Long:  `List current news from public service offices such as police and fire departments.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stories, err := client.GetPublicServiceNews(cmd.Context(), queryOptions(cmd)...)
		return printStories(stories, err)
	},
}

// regionCmd represents the region command
var regionCmd = &cobra.Command{
	Use:   "region <code>...",
	Short: "List public service news for one or more regions",
	Long: `List public service news for German states by their two letter code (e.g. nw, by, be).

With several codes the regions are queried concurrently and printed in the given order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRegion,
}

// topicCmd represents the topic command
var topicCmd = &cobra.Command{
	Use:   "topic <topic>",
	Short: "List stories for a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stories, err := client.GetStoriesByTopic(cmd.Context(), args[0], queryOptions(cmd)...)
		return printStories(stories, err)
	},
}

// keywordsCmd represents the keywords command
var keywordsCmd = &cobra.Command{
	Use:   "keywords <keyword>...",
	Short: "List stories tagged with any of the keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stories, err := client.GetStoriesByKeywords(cmd.Context(), args, queryOptions(cmd)...)
		return printStories(stories, err)
	},
}

// irCmd represents the ir command
var irCmd = &cobra.Command{
	Use:   "ir <category>",
	Short: "List investor relations news",
	Long:  `List investor relations news of a category such as adhoc, directorsdealings or ir-news.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stories, err := client.GetInvestorRelationsNews(cmd.Context(), args[0], queryOptions(cmd)...)
		return printStories(stories, err)
	},
}

// companyCmd represents the company command
var companyCmd = &cobra.Command{
	Use:   "company <id>",
	Short: "List stories published by a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stories, err := client.GetCompanyStories(cmd.Context(), args[0], queryOptions(cmd)...)
		return printStories(stories, err)
	},
}

// officeCmd represents the office command
var officeCmd = &cobra.Command{
	Use:   "office <id>",
	Short: "List stories published by a public service office",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stories, err := client.GetOfficeStories(cmd.Context(), args[0], queryOptions(cmd)...)
		return printStories(stories, err)
	},
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <term>...",
	Short: "Search companies or offices by name",
	Long: `Search companies or public service offices by name.

A single term must be at least four characters long. Several terms match
entities containing any of them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the presseportal API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Testing connection to %s...\n", cfg.API.BaseURL)
		if err := client.TestConnection(cmd.Context()); err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}
		fmt.Println("✓ Connection successful!")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{storiesCmd, publicServiceCmd, regionCmd, topicCmd, keywordsCmd, irCmd, companyCmd, officeCmd} {
		addQueryFlags(c)
		rootCmd.AddCommand(c)
	}

	searchCmd.Flags().StringVarP(&searchEntity, "entity", "e", string(presseportal.EntityCompany), "entity type to search (company/office)")
	searchCmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of results, overrides query.limit")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(testCmd)
}

func runRegion(cmd *cobra.Command, args []string) error {
	opts := queryOptions(cmd)

	if len(args) == 1 {
		stories, err := client.GetPublicServiceRegion(cmd.Context(), args[0], opts...)
		return printStories(stories, err)
	}

	results, err := client.GetPublicServiceRegions(cmd.Context(), args, opts...)
	if err != nil {
		return err
	}

	for i := range results {
		results[i].Stories, err = applyFilter(results[i].Stories)
		if err != nil {
			return err
		}
	}

	return writeResult(os.Stdout, cfg.Output.Format, formatOptions(), results)
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts := queryOptions(cmd)

	logger.Info().
		Str("entity", searchEntity).
		Strs("terms", args).
		Msg("Searching entities")

	var (
		entities []presseportal.Entity
		err      error
	)
	if len(args) == 1 {
		entities, err = client.SearchEntities(cmd.Context(), strings.ToLower(searchEntity), args[0], opts...)
	} else {
		entities, err = client.SearchEntitiesAny(cmd.Context(), strings.ToLower(searchEntity), args, opts...)
	}
	if err != nil {
		return err
	}

	return writeResult(os.Stdout, cfg.Output.Format, formatOptions(), entities)
}

// printStories filters and prints the result of a story query
func printStories(stories []presseportal.Story, err error) error {
	if err != nil {
		return err
	}

	stories, err = applyFilter(stories)
	if err != nil {
		return err
	}

	return writeResult(os.Stdout, cfg.Output.Format, formatOptions(), stories)
}
