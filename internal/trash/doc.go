// Package trash moves directories out of the way without deleting them.
//
// [System] hands paths to the operating system's recycle bin. [Dir] moves
// them into a plain directory and records where each item came from, which
// works everywhere, including headless machines without a desktop trash.
package trash
