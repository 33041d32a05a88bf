package main

import (
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	Config    string `type:"path" env:"FERRY_CONFIG" help:"Path to the ferryctl YAML config."`
	LogLevel  string `name:"log-level" env:"FERRY_LOG_LEVEL" help:"Log level (debug, info, warn, error)."`
	LogFormat string `name:"log-format" env:"FERRY_LOG_FORMAT" help:"Log format (auto, text, json)."`
	BaseURL   string `name:"base-url" env:"FERRY_BASE_URL" help:"Sales backend base URL."`
	Mock      bool   `help:"Use the in-memory demo backend instead of the live API."`

	Login    loginCmd    `cmd:"" help:"Sign in and store the session token."`
	Logout   logoutCmd   `cmd:"" help:"Forget the stored session."`
	Refresh  refreshCmd  `cmd:"" help:"Renew the stored session token."`
	Register registerCmd `cmd:"" help:"Create a seller account from an invite token."`
	Sales    salesCmd    `cmd:"" help:"List and edit sales."`
	Report   reportCmd   `cmd:"" help:"Download the passenger manifest of one departure."`
	Download downloadCmd `cmd:"" help:"Export every sale of the business."`
	Summary  summaryCmd  `cmd:"" help:"Show paid and unpaid totals for a window."`
	Serve    serveCmd    `cmd:"" help:"Serve the sales admin over HTTP."`
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Name("ferryctl"),
		kong.Description("Sales administration for ferry ticket sellers."),
		kong.UsageOnError(),
	)
	app, err := newApp(root, os.Stdout)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(app)
	ctx.FatalIfErrorf(err)
}
