// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"vagabond-cli/internal/issue"
	"vagabond-cli/pkg/uri"

	"github.com/spf13/cobra"
)

var uriCmd = &cobra.Command{
	Use:   "uri",
	Short: "Parse and build URIs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var uriParseCmd = &cobra.Command{
	Use:   "parse <uri>",
	Short: "Decompose a URI into its components",
	Long: `Decompose a URI into its components and print them, followed by the
canonical serialized form. Query parameter order and duplicate names are
preserved, so the canonical form round-trips:

  vagabond uri parse 'http://example.com:80/a?x=1&x=2'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runURIParse(cmd.OutOrStdout(), args[0])
	},
}

var uriBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a URI from components",
	Long: `Build a URI from component flags and print the serialized form.
Reserved characters in values are percent-encoded automatically:

  vagabond uri build --scheme https --host example.com --port 8443 \
      --path /search --query 'q=a b' --query-flag debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runURIBuild(cmd.OutOrStdout(), cmd)
	},
}

func init() {
	uriCmd.AddCommand(uriParseCmd)
	uriCmd.AddCommand(uriBuildCmd)

	uriBuildCmd.Flags().String("scheme", "", "URI scheme (e.g. https)")
	uriBuildCmd.Flags().String("userinfo", "", "user info, user or user:password")
	uriBuildCmd.Flags().String("host", "", "host name or address")
	uriBuildCmd.Flags().Int("port", 0, "port number (0 = omit)")
	uriBuildCmd.Flags().String("path", "", "path component")
	uriBuildCmd.Flags().StringArray("query", nil, "query parameter as name=value (repeatable, order preserved)")
	uriBuildCmd.Flags().StringArray("query-flag", nil, "valueless query parameter (repeatable)")
	uriBuildCmd.Flags().String("fragment", "", "fragment component")
}

// runURIParse parses the input and prints components plus the canonical form.
func runURIParse(w io.Writer, input string) error {
	m, err := uri.Parse(input)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("parse uri").
			WithResource(input).
			WithSuggestion("Check for stray characters; query pairs must be name=value or a bare flag name").
			Wrap(err).
			BuildError()
	}
	u := m.Immutable()

	key := CmdStyle
	printComponent := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s: %s\n", key.Render(name), value)
		}
	}

	printComponent("scheme", u.Scheme())
	printComponent("userinfo", u.UserInfo())
	printComponent("host", u.Host())
	if u.Port() != 0 {
		fmt.Fprintf(w, "%s: %d\n", key.Render("port"), u.Port())
	}
	printComponent("path", u.Path())
	for _, name := range u.QueryNames() {
		for _, value := range u.QueryValues(name) {
			fmt.Fprintf(w, "%s: %s=%s\n", key.Render("query"), name, value)
		}
	}
	printComponent("fragment", u.Fragment())

	fmt.Fprintf(w, "%s: %s\n", key.Render("canonical"), u.String())
	return nil
}

// runURIBuild assembles a URI from the build flags.
func runURIBuild(w io.Writer, cmd *cobra.Command) error {
	scheme, _ := cmd.Flags().GetString("scheme")
	userInfo, _ := cmd.Flags().GetString("userinfo")
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	path, _ := cmd.Flags().GetString("path")
	queries, _ := cmd.Flags().GetStringArray("query")
	flags, _ := cmd.Flags().GetStringArray("query-flag")
	fragment, _ := cmd.Flags().GetString("fragment")

	m := uri.New().
		Scheme(scheme).
		UserInfo(userInfo).
		Host(host).
		Port(port).
		Path(path).
		Fragment(fragment)

	for _, q := range queries {
		name, value, ok := strings.Cut(q, "=")
		if !ok || name == "" {
			return issue.NewErrorContext().
				WithOperation("build uri").
				WithResource(q).
				WithSuggestion("Use --query name=value, or --query-flag name for a valueless parameter").
				Wrap(fmt.Errorf("query parameter must have the form name=value")).
				BuildError()
		}
		m.Query(name, value)
	}
	for _, name := range flags {
		m.QueryFlag(name)
	}

	fmt.Fprintln(w, m.String())
	return nil
}
