package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/philippludwig/libsimplehttp/client"
)

// NewGetCommand returns the get command
func NewGetCommand(cl **client.HttpClient) (cmd *cobra.Command) {
	var headers []string
	var include bool

	cmd = &cobra.Command{
		Use:     "get <url>",
		Short:   "Perform a GET request",
		Example: `httpc get https://www.example.com/ -H "User-Agent: libsimplehttp"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := (*cl).Get(args[0], joinHeaders(headers))
			if err != nil {
				return err
			}

			printResponse(cmd.OutOrStdout(), resp, include)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra header line, may be repeated")
	cmd.Flags().BoolVarP(&include, "include", "i", false, "print the header block before the body")

	return cmd
}

func printResponse(w io.Writer, resp *client.Response, include bool) {
	if include && resp.Header != "" {
		fmt.Fprint(w, resp.Header+"\r\n\r\n")
	}
	fmt.Fprintln(w, resp.Data)
}
