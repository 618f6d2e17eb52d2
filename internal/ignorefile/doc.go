// Package ignorefile turns rows of an analysis report into .gitignore entries.
//
// The flow is:
//  1. Selector picks the path of every row whose action column is the
//     ignore marker or empty.
//  2. Writer normalizes the selection (deduplicated, sorted ascending) and
//     applies a WritePolicy to the destination file.
//  3. Summarize and Emit describe the outcome for the console.
//
// Two policies exist. PolicyAppend keeps the existing file and appends only
// paths that are not already listed. PolicyReplace regenerates the file from
// scratch under a fixed header, so running it twice on the same input gives
// byte-identical output.
package ignorefile
