package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fromtaoyuanhsinchuuuu/CryptoLedger/docs"
	"github.com/google/subcommands"
)

// topicCmd prints an embedded documentation topic.
type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show a documentation topic" }
func (*topicCmd) Usage() string {
	return `clx topic [<name>]

  Shows a documentation topic. Without a name, lists the available topics.
  Use 'clx topic "*"' to show them all.
`
}
func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := "readme"
	if f.NArg() > 0 {
		name = f.Arg(0)
	}
	doc, err := docs.GetTopic(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
