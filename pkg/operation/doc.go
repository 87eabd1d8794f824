/*
Package operation implements the replacement run itself.

	+-------------+      +-------------+      +-------------+
	|    walk     | ---> |  Selector   | ---> |  Rewriter   |
	|   (Files)   |      | (ext/glob)  |      | read/replace|
	+-------------+      +-------------+      |   /write    |
	                                          +------+------+
	                                                 |
	                                          +------+------+
	                                          |   Report    |
	                                          | + log.Logger|
	                                          +-------------+

🎯 Purpose:
- Walks the configured root and selects files by extension and ignore globs
- Replaces every occurrence of the search token in each selected file
- Writes each file back in place, even when nothing matched
- Collects one FileResult per file into a Report

🔄 Flow:
1. New validates the config (nothing is touched on failure)
2. Run walks the root lazily
3. Each selected file is rewritten, at most Jobs at a time
4. Every result is printed as it completes
5. A summary and the completion notice are printed at the end

⚡ Failure handling:
- A file that cannot be read or written is recorded and skipped
- An unreadable sub-directory is recorded and skipped
- An unreadable root, or a cancelled context, stops the run with an error
- A missing root is an empty run

🔍 Example:

	report, err := operation.Execute(ctx, operation.Options{
		Config: cfg,
		FS:     fsys.OS{},
		Logger: log.New(os.Stdout, *zerolog.Ctx(ctx)),
	})
	if err != nil {
		return err
	}
	fmt.Println(report.Failed(), "files failed")
*/
package operation
