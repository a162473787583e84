// Package latent implements the multi-tick test command at the heart of the
// harness: a single-shot task that issues one asynchronous request against
// the service client, yields back to the runner's tick loop while the
// operation is in flight, and records a pass/fail verdict when the
// operation's one-shot completion fires.
//
// A command moves through exactly three states:
//
//	NotStarted --Start()--> Pending --completion fires--> Finished
//
// No transition leaves Finished and none skips Pending. The runner polls
// Update() between ticks; it observes Finished only after the verdict has
// been handed to the Reporter. A command has no internal timeout: if the
// completion never fires, the runner's own deadline is the only backstop.
package latent
