/*
Package cli provides command-line helpers shared by the parallax commands.

Output Formatting:

Command results that are not interpretation reports (lint findings, module
status) are written through a Formatter:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, status); err != nil {
		return err
	}

Values implementing TextWriter control their own text rendering.

Errors:

ConfigError and CommandError carry the failing field or command; ExitCode
maps an error returned by a command to a process exit status.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
