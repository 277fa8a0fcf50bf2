package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philippludwig/libsimplehttp/client"
)

type demoCall struct {
	url    string
	header string
}

var demoCalls = []demoCall{
	{url: "http://www.example.com/"},
	{url: "https://www.example.com/"},
	{url: "https://www.example.com/", header: "User-Agent: libsimplehttp"},
}

// NewDemoCommand returns the demo command
func NewDemoCommand(cl **client.HttpClient) (cmd *cobra.Command) {
	cmd = &cobra.Command{
		Use:   "demo",
		Short: "Run the sample requests against www.example.com",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, *cl, demoCalls)
		},
	}

	return cmd
}

// runDemo performs every call and reports failures inline; it only fails
// when all calls failed.
func runDemo(cmd *cobra.Command, cl *client.HttpClient, calls []demoCall) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, call := range calls {
		fmt.Fprintf(out, "GET %s\n", call.url)

		resp, err := cl.Get(call.url, call.header)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}

		fmt.Fprintln(out, resp.Data)
	}

	if failed == len(calls) {
		return fmt.Errorf("all %d demo requests failed", failed)
	}
	return nil
}
