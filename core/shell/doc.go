// Package shell turns one line of input into pipeline segments, redirections
// and argument vectors.
//
// The steps loosely follow
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
// with everything except the following removed:
//
// 1. The line is split into pipeline segments on every '|'. There is no
// quoting, so a '|' anywhere is a separator.
//
// 2. Each segment has its redirection operators ('<' and '>') and their
// operands removed from the text.
//
// 3. What remains is broken into fields on blanks; the first field names
// either an internal command or an executable found on the PATH.
package shell
