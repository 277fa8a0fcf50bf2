package cmd

import (
	"github.com/spf13/cobra"

	"github.com/philippludwig/libsimplehttp/client"
)

// NewPostCommand returns the post command
func NewPostCommand(cl **client.HttpClient) (cmd *cobra.Command) {
	var headers []string
	var body string
	var include bool

	cmd = &cobra.Command{
		Use:     "post <url>",
		Short:   "Perform a POST request",
		Example: `httpc post http://localhost:8080/submit -d "a=1&b=2" -H "Content-Type: application/x-www-form-urlencoded"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := (*cl).Post(args[0], body, joinHeaders(headers))
			if err != nil {
				return err
			}

			printResponse(cmd.OutOrStdout(), resp, include)
			return nil
		},
	}

	cmd.Flags().StringVarP(&body, "data", "d", "", "request body")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra header line, may be repeated")
	cmd.Flags().BoolVarP(&include, "include", "i", false, "print the header block before the body")

	return cmd
}
