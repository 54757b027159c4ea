// Command storyreel generates narrated short-form videos from feed stories.
package main
