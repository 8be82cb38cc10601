// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.BoolFlag{
			Name:  "memory",
			Usage: "Use an in-memory store instead of SQLite",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable debug logging",
		},
	}
}

// serveCommand runs the HTTP application.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the resume builder web application",
		Flags:  commonFlags(),
		Action: r.Serve,
	}
}

// resetPaymentCommand clears the payment flag. No page flow ever clears it,
// so this is the only reset path.
func resetPaymentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "reset-payment",
		Usage:  "Clear the recorded payment so downloads lock again",
		Flags:  commonFlags(),
		Action: r.ResetPayment,
	}
}

// backupCommand exports the stored resume data to a takeout file.
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Write the stored resume data to a JSON or XLSX file",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Backup format: json or xlsx",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to the download filename)",
			},
		),
		Action: r.Backup,
	}
}
