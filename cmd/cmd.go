package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"
	"github.com/warpdl/warpcookie/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

// Execute runs the warpcookie CLI with the given arguments.
func Execute(args []string, bArgs BuildArgs) error {
	return newApp(bArgs).Run(args)
}

func newApp(bArgs BuildArgs) *cli.App {
	app := cli.NewApp()
	app.Name = "warpcookie"
	app.HelpName = "warpcookie"
	app.Usage = "client side HTTP cookie matching."
	app.Version = fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType)
	app.UsageText = "warpcookie <command> [arguments...]"
	app.Description = DESCRIPTION
	app.CustomAppHelpTemplate = HELP_TEMPL
	app.OnUsageError = common.UsageErrorCallback
	app.HideHelp = true
	app.HideVersion = true
	app.Commands = []cli.Command{
		{
			Name:                   "match",
			Aliases:                []string{"m"},
			Usage:                  "print the cookie headers for a url",
			ArgsUsage:              "<url>",
			Description:            MatchDescription,
			CustomHelpTemplate:     CMD_HELP_TEMPL,
			OnUsageError:           common.UsageErrorCallback,
			Action:                 match,
			Flags:                  matchFlags,
			UseShortOptionHandling: true,
		},
		{
			Name:               "serve",
			Usage:              "answer cookie lookups over HTTP",
			Description:        ServeDescription,
			CustomHelpTemplate: CMD_HELP_TEMPL,
			OnUsageError:       common.UsageErrorCallback,
			Action:             serve,
			Flags:              serveFlags,
		},
		{
			Name:               "policies",
			Aliases:            []string{"p"},
			Usage:              "list the supported cookie policies",
			Description:        PoliciesDescription,
			CustomHelpTemplate: CMD_HELP_TEMPL,
			Action:             policies,
		},
		{
			Name:    "help",
			Aliases: []string{"h"},
			Usage:   "prints the help message",
			Action:  common.Help,
		},
		{
			Name:               "version",
			Aliases:            []string{"v"},
			Usage:              "prints installed version of warpcookie",
			UsageText:          " ",
			CustomHelpTemplate: CMD_HELP_TEMPL,
			Action:             common.GetVersion,
		},
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app
}
