/*
Package cli provides command-line interface utilities for Rowport.

The cli package includes output helpers, progress reporters, exit-code
mapping, and signal handling used by the rowport command.

Output:

Summaries and diagnostics go through the Output helper, which keeps them
on standard error so they never mix with an export streamed to standard
output:

	out := cli.NewOutput(quiet, verbose)
	out.Printf("exported %d rows\n", rows)
	out.Verbosef("row group flushed at %d rows\n", n)

Structured results (the formats listing, benchmark reports) use a
formatter:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Exit Codes:

Errors map to process exit codes so wrapper scripts can react without
parsing stderr:

	err := run()
	os.Exit(cli.ExitCode(err))

Progress Reporting:

For long-running operations, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(totalItems)
	for i := 0; i < totalItems; i++ {
		// Do work
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
